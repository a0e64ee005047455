package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/apperr"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(apiMiddleware.RequestID(app.logger))
	r.Use(apiMiddleware.Recoverer)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.verifier)
	taskHandler := api.NewTaskHandler(app.taskService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Patch("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithData(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Unknown routes and unsupported methods both answer with the same
	// taxonomy code; the closed code set has no separate method error.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, apperr.New(apperr.CodeRouteNotFound, "Not found"))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
