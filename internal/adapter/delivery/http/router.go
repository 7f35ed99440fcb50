// Package http exposes the URL shortener over a JSON HTTP API and serves the
// short link redirects.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter builds the chi router. Extra middlewares run after request
// logging and panic recovery, so rejected requests are still logged.
func NewRouter(
	logger *httplog.Logger,
	urlUseCase urlUseCase,
	baseURL string,
	middlewares ...func(http.Handler) http.Handler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		ExposedHeaders:   []string{"Location", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewares...)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	h := newURLHandler(urlUseCase, validator.New(), baseURL)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/urls", func(r chi.Router) {
			r.Post("/", h.createShortURL)
			r.Get("/", h.getURLsByFullURL)
			r.Get("/{shortURLID}", h.getURLByShortURLID)
		})
	})

	r.Get("/{shortURLID}", h.redirect)

	return r
}
