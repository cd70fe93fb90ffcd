package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"literasi-backend/internal/handlers"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/middleware"
	"literasi-backend/internal/websocket"
)

func New(
	log *logger.Logger,
	systemHandler *handlers.SystemHandler,
	childHandler *handlers.ChildHandler,
	catalogHandler *handlers.CatalogHandler,
	learningHandler *handlers.LearningHandler,
	wsHub *websocket.Hub,
	allowedOrigins []string,
	writeRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Write rate limiter (per IP per minute)
	writeLimiter := middleware.NewRateLimiter(writeRateLimit, time.Minute)

	r.Get("/", systemHandler.Root)
	r.Get("/test", systemHandler.Test)

	// ──── Catalog ────
	r.Get("/activities", catalogHandler.ListActivities)
	r.Get("/badges", catalogHandler.ListBadges)

	// ──── Children ────
	r.Get("/children", childHandler.List)

	// ──── Writes ────
	r.Group(func(r chi.Router) {
		r.Use(writeLimiter.Middleware)
		r.Post("/children", childHandler.Create)
		r.Post("/recommend", learningHandler.Recommend)
		r.Post("/progress", learningHandler.SubmitProgress)
		r.Post("/report", learningHandler.Report)
	})

	// ──── WebSocket ────
	if wsHub != nil {
		r.Get("/ws/children/{id}", wsHub.HandleWebSocket)
	}

	return r
}
