package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proctor_admin/internal/api"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/app/worker"
	"proctor_admin/internal/domain/repository"
	"proctor_admin/internal/platform/config"
	"proctor_admin/internal/platform/database"
	"proctor_admin/internal/platform/queue"
	"proctor_admin/internal/platform/seed"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	database.Connect()
	defer database.Close()
	log.Println("Database connected.")

	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema up to date.")

	if err := seed.Apply(database.DB, config.AppConfig.SeedDir); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// 3. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	log.Println("Redis connected.")

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	contestRepo := repository.NewPgContestRepository(database.DB)
	roomRepo := repository.NewPgRoomRepository(database.DB)
	candidateRepo := repository.NewPgCandidateRepository(database.DB)
	attemptRepo := repository.NewPgAttemptRepository(database.DB)
	alertRepo := repository.NewPgAlertRepository(database.DB)
	violationRepo := repository.NewPgViolationRepository(database.DB)
	processRepo := repository.NewPgProcessRepository(database.DB)
	imageRepo := repository.NewPgImageRepository(database.DB)
	messageRepo := repository.NewPgMessageRepository(database.DB)
	auditLogRepo := repository.NewPgAuditLogRepository(database.DB)
	blacklistRepo := repository.NewPgBlacklistRepository(database.DB)

	// 5. Initialize Services
	auditService := service.NewAuditService(queue.RDB)
	contestService := service.NewContestService(contestRepo, roomRepo)
	roomService := service.NewRoomService(roomRepo, contestRepo)
	attemptService := service.NewAttemptService(attemptRepo, auditService)
	violationService := service.NewViolationService(violationRepo, attemptRepo, alertRepo, auditService)
	rosterService := service.NewRosterService(candidateRepo, contestRepo)
	monitorService := service.NewMonitorService(processRepo, imageRepo, messageRepo, auditLogRepo, roomRepo, auditService)
	settingsService := service.NewSettingsService(userRepo, alertRepo, blacklistRepo, contestRepo)
	dashboardService := service.NewDashboardService(contestRepo, roomRepo, attemptRepo, violationRepo)

	// 6. Initialize Audit Worker (as a goroutine)
	auditWorker := worker.NewAuditWorker(queue.RDB, auditLogRepo)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go auditWorker.Start(workerCtx)
	log.Println("Audit worker started.")

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		contestService,
		roomService,
		attemptService,
		violationService,
		rosterService,
		monitorService,
		settingsService,
		dashboardService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
