package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"arnio/internal/docstore"
	"arnio/internal/domain"
)

type documentDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SizeBytes   int64      `json:"size"`
	MimeType    string     `json:"type"`
	Progress    int        `json:"progress"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	LastRead    *time.Time `json:"lastRead,omitempty"`
	UploadDate  time.Time  `json:"uploadDate"`
}

func toDocumentDTO(d domain.Document) documentDTO {
	return documentDTO{
		ID:          d.ID,
		Name:        d.Name,
		SizeBytes:   d.SizeBytes,
		MimeType:    d.MimeType,
		Progress:    d.ProgressPercent,
		TotalPages:  d.TotalPages,
		CurrentPage: d.CurrentPage,
		LastRead:    d.LastReadAt,
		UploadDate:  d.UploadedAt,
	}
}

func (a *App) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := a.Docs.List(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	out := make([]documentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{"documents": out})
}

type uploadRequest struct {
	Name       string `json:"name"`
	SizeBytes  int64  `json:"size"`
	MimeType   string `json:"type"`
	TotalPages int    `json:"totalPages"`
}

func (a *App) UploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	if req.Name == "" || req.SizeBytes <= 0 {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	doc, err := a.Docs.Upload(r.Context(), a.currentUserID(r), docstore.FileMeta{
		Name:       req.Name,
		SizeBytes:  req.SizeBytes,
		MimeType:   req.MimeType,
		TotalPages: req.TotalPages,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toDocumentDTO(*doc))
}

func (a *App) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")
	if err := a.Docs.Delete(r.Context(), a.currentUserID(r), docID); err != nil {
		a.domainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type progressRequest struct {
	Progress int `json:"progress"`
}

func (a *App) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	doc, err := a.Docs.UpdateProgress(r.Context(), a.currentUserID(r), docID, req.Progress)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDocumentDTO(*doc))
}
