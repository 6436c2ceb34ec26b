package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brawl-missions/internal/config"
	"brawl-missions/internal/transport/httpserver/handler"
	authmw "brawl-missions/internal/transport/httpserver/middleware"
	"brawl-missions/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, verifier authmw.TokenVerifier, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	if cfg.Env != "test" {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(authmw.Metrics)

		r.Get("/health", handlers.Common.Health)

		r.Post("/brawlers/register", handlers.Brawlers.Register)
		r.Post("/authentication/login", handlers.Brawlers.Login)

		r.Get("/missions", handlers.Missions.ListMissions)
		r.Get("/missions/{mission_id}", handlers.Missions.GetMission)
		r.Get("/missions/{mission_id}/crew", handlers.Missions.GetCrew)

		auth := authmw.NewBearerAuth(verifier, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/brawlers/avatar", handlers.Brawlers.UploadAvatar)

			r.Post("/mission-management", handlers.Missions.AddMission)
			r.Patch("/mission-management/{mission_id}", handlers.Missions.EditMission)
			r.Delete("/mission-management/{mission_id}", handlers.Missions.RemoveMission)

			r.Patch("/mission-operation/in-progress/{mission_id}", handlers.Missions.ToProgress)
			r.Patch("/mission-operation/to-completed/{mission_id}", handlers.Missions.ToCompleted)
			r.Patch("/mission-operation/to-failed/{mission_id}", handlers.Missions.ToFailed)

			r.Post("/crew-operation/join/{mission_id}", handlers.Crew.Join)
			r.Delete("/crew-operation/leave/{mission_id}", handlers.Crew.Leave)
		})
	})

	return r
}
