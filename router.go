package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)

			pr.Get("/ranges", a.handleNormalRanges)

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/", a.handleListReports)
				rr.Post("/", a.handleCreateReport)
				rr.Delete("/{index}", a.handleDeleteReport)
				rr.Get("/latest/status", a.handleLatestStatus)

				rr.Post("/upload", a.handleUpload)
				rr.Route("/review/{id}", func(sr chi.Router) {
					sr.Get("/", a.handleGetReview)
					sr.Put("/", a.handleUpdateReview)
					sr.Post("/commit", a.handleCommitReview)
					sr.Delete("/", a.handleDiscardReview)
				})
			})

			pr.Route("/trends", func(tr chi.Router) {
				tr.Get("/history", a.handleTrendHistory)
				tr.Get("/summary", a.handleTrendSummary)
				tr.Get("/changes", a.handleSignificantChanges)
			})

			pr.Route("/export", func(er chi.Router) {
				er.Get("/xlsx", a.handleExportXLSX)
				er.Get("/csv", a.handleExportCSV)
			})
		})
	})

	return r
}
