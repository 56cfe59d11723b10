// Package httpapi assembles the route table. Public routes sit outside the
// auth group; everything under /v1/me, /v1/documents, /v1/recommendations and
// /v1/insights requires a live session.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"arnio/internal/http/handlers"
	"arnio/internal/infra"
	"arnio/internal/middleware"
)

// Options carries router wiring that does not belong on the App container.
type Options struct {
	Config        *infra.Config
	CountryLookup middleware.CountryLookup
	Sessions      middleware.SessionValidator
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	cfg := opts.Config
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, opts.CountryLookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	if app.Metrics != nil {
		r.Handle("/metrics", app.Metrics)
	}

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/signup", app.SignUp)
		r.Post("/signin", app.SignIn)
		r.With(middleware.AuthJWT(cfg.JWTSecret, opts.Sessions)).Post("/signout", app.SignOut)
	})

	r.Get("/v1/plans", app.Plans)

	r.Route("/v1/catalog", func(r chi.Router) {
		r.Get("/books", app.CatalogList)
		r.Get("/books/{id}", app.CatalogBook)
		r.Get("/search", app.CatalogSearch)
		r.Get("/genres", app.CatalogGenres)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret, opts.Sessions))

		r.Route("/v1/me", func(r chi.Router) {
			r.Get("/", app.Me)
			r.Delete("/", app.DeleteAccount)
			r.Patch("/settings", app.UpdateSettings)
			r.Post("/plan", app.ChangePlan)
			r.Delete("/plan", app.CancelPlan)
		})

		r.Route("/v1/documents", func(r chi.Router) {
			r.Get("/", app.ListDocuments)
			r.Post("/", app.UploadDocument)
			r.Delete("/{id}", app.DeleteDocument)
			r.Patch("/{id}/progress", app.UpdateProgress)
		})

		r.Route("/v1/recommendations", func(r chi.Router) {
			r.Get("/books", app.RecommendBooks)
			r.Get("/music", app.RecommendMusic)
		})

		r.Get("/v1/insights", app.ReadingInsights)
	})

	return r
}
