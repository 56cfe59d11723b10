package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"arnio/internal/catalog"
)

func (a *App) CatalogList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	a.json(w, http.StatusOK, catalog.List(page, limit, q.Get("genre")))
}

func (a *App) CatalogBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	book, err := catalog.ByID(id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, book)
}

func (a *App) CatalogSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minRating, _ := strconv.ParseFloat(q.Get("minRating"), 64)
	books := catalog.Search(q.Get("q"), catalog.Filters{
		Genre:     q.Get("genre"),
		MinRating: minRating,
	})
	a.json(w, http.StatusOK, map[string]any{"books": books, "total": len(books)})
}

func (a *App) CatalogGenres(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"genres": catalog.Genres()})
}
