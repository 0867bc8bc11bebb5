// Package api exposes the nutrition log and analytics endpoints over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"nutritrack/internal/analytics"
	"nutritrack/internal/foodlog"
	"nutritrack/internal/profile"
	"nutritrack/internal/progress"
	"nutritrack/internal/streak"
	"nutritrack/internal/waterlog"
	"nutritrack/internal/weightlog"
)

// Server wires the repositories and services into HTTP handlers.
type Server struct {
	food     *foodlog.Repository
	water    *waterlog.Repository
	weight   *weightlog.Repository
	profiles *profile.Repository

	streaks   *streak.Service
	progress  *progress.Service
	analytics *analytics.Service

	jwtSecret []byte
}

// NewServer creates a new Server.
func NewServer(
	food *foodlog.Repository,
	water *waterlog.Repository,
	weight *weightlog.Repository,
	profiles *profile.Repository,
	streaks *streak.Service,
	prog *progress.Service,
	analyticsSvc *analytics.Service,
	jwtSecret []byte,
) *Server {
	return &Server{
		food:      food,
		water:     water,
		weight:    weight,
		profiles:  profiles,
		streaks:   streaks,
		progress:  prog,
		analytics: analyticsSvc,
		jwtSecret: jwtSecret,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.Authenticate)

		r.Route("/food", func(r chi.Router) {
			r.Post("/", s.CreateFoodLog)
			r.Get("/", s.ListFoodLogs)
			r.Put("/{id}", s.UpdateFoodLog)
			r.Delete("/{id}", s.DeleteFoodLog)
		})

		r.Route("/water", func(r chi.Router) {
			r.Post("/", s.CreateWaterLog)
			r.Delete("/{id}", s.DeleteWaterLog)
		})

		r.Route("/weight", func(r chi.Router) {
			r.Post("/", s.CreateWeightLog)
			r.Get("/", s.ListWeightLogs)
			r.Delete("/{id}", s.DeleteWeightLog)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.GetProfile)
			r.Put("/", s.PutProfile)
		})

		r.Get("/streak", s.GetStreak)
		r.Get("/progress/week", s.GetWeeklyProgress)
		r.Get("/analytics", s.GetAnalytics)
	})

	return r
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
