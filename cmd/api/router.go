package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/config"
	"github.com/crucial707/todo-api/internal/handlers"
	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/repo"
	"github.com/crucial707/todo-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, services and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config) (http.Handler, error) {
	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	events := repo.NewEventLogRepo(db)
	users := service.NewUserService(repo.NewUserRepo(db), auth.NewHasher(cfg.BcryptCost), tokens, events)
	tasks := service.NewTaskService(repo.NewTaskRepo(db), events)

	authHandler := &handlers.AuthHandler{Users: users}
	userHandler := &handlers.UserHandler{Users: users}
	taskHandler := &handlers.TaskHandler{Tasks: tasks}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(db))
	r.Handle("/metrics", promhttp.Handler())

	limitBody := middleware.MaxBytes(middleware.DefaultMaxBodyBytes)

	// Public
	r.With(limitBody).Post("/users", authHandler.Register)
	r.With(limitBody).Post("/login", authHandler.Login)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(users))

		r.Get("/users", userHandler.ListUsers)
		r.With(middleware.SelfOnly("id"), limitBody).Put("/users/{id}", userHandler.UpdateUser)
		r.With(middleware.SelfOnly("id")).Delete("/users/{id}", userHandler.DeleteUser)

		r.Route("/tasks", func(r chi.Router) {
			r.With(limitBody).Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)
			r.Get("/{id}", taskHandler.GetTask)
			r.With(limitBody).Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	return r, nil
}
