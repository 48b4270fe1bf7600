// Package server exposes the application over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/app"
)

// Server holds the dependencies shared by the handlers
type Server struct {
	app *app.App
	log *zap.Logger
}

// NewRouter builds the API handler.
//
// Routes:
//
//	POST /api/login                                        → login
//	POST /api/logout                                       → logout (session)
//	GET  /api/me                                           → current session
//	GET  /api/tasks?q=                                     → task list with progress
//	POST /api/tasks                                        → add primary task
//	POST /api/tasks/{taskID}/subtasks                      → add subtask
//	POST /api/tasks/{taskID}/subtasks/{subTaskID}/toggle   → toggle subtask
//	GET  /api/users, POST /api/users                       → directory (admin)
//	GET  /api/audit                                        → audit log (admin)
func NewRouter(a *app.App, logger *zap.Logger) http.Handler {
	s := &Server{app: a, log: logger}
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(WithRequestLogging(logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(WithSession)

			r.Post("/logout", s.handleLogout)
			r.Get("/me", s.handleMe)

			r.Get("/tasks", s.handleListTasks)
			r.Post("/tasks", s.handleAddTask)
			r.Post("/tasks/{taskID}/subtasks", s.handleAddSubTask)
			r.Post("/tasks/{taskID}/subtasks/{subTaskID}/toggle", s.handleToggleSubTask)

			// Admin panel
			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/users", s.handleListUsers)
				r.Post("/users", s.handleCreateUser)
				r.Get("/audit", s.handleAudit)
			})
		})
	})

	return r
}
