package api

import (
	"net/http"
	"time"

	"proctor_admin/internal/api/handler"
	"proctor_admin/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	contestService *service.ContestService,
	roomService *service.RoomService,
	attemptService *service.AttemptService,
	violationService *service.ViolationService,
	rosterService *service.RosterService,
	monitorService *service.MonitorService,
	settingsService *service.SettingsService,
	dashboardService *service.DashboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		contestHandler := handler.NewContestHandler(contestService, roomService, rosterService, settingsService)
		v1.Route("/contests", contestHandler.RegisterRoutes)

		roomHandler := handler.NewRoomHandler(roomService)
		v1.Route("/rooms", roomHandler.RegisterRoutes)

		attemptHandler := handler.NewAttemptHandler(attemptService)
		v1.Route("/attempts", attemptHandler.RegisterRoutes)

		violationHandler := handler.NewViolationHandler(violationService)
		v1.Route("/violations", violationHandler.RegisterRoutes)

		// Processes, screenshots, messages and the audit trail share one
		// handler, registered at the v1 root.
		monitorHandler := handler.NewMonitorHandler(monitorService)
		v1.Group(monitorHandler.RegisterRoutes)

		settingsHandler := handler.NewSettingsHandler(settingsService)
		v1.Route("/settings", settingsHandler.RegisterRoutes)

		dashboardHandler := handler.NewDashboardHandler(dashboardService)
		v1.Route("/dashboard", dashboardHandler.RegisterRoutes)
	})

	return r
}
