package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aid-backend/internal/auth"
	"aid-backend/internal/backup"
	"aid-backend/internal/cache"
	"aid-backend/internal/config"
	"aid-backend/internal/database"
	"aid-backend/internal/db"
	"aid-backend/internal/handlers"
	"aid-backend/internal/health"
	apphttp "aid-backend/internal/http"
	"aid-backend/internal/middleware"
	"aid-backend/internal/models"
	"aid-backend/internal/monitoring"
	"aid-backend/internal/realtime"
	"aid-backend/internal/repositories"
	"aid-backend/internal/services"
	"aid-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Main] Redis unavailable, auth cache disabled: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	beneficiaryRepo := repositories.NewBeneficiaryRepository(pool)
	templateRepo := repositories.NewPackageTemplateRepository(pool)
	courierRepo := repositories.NewCourierRepository(pool)
	organizationRepo := repositories.NewOrganizationRepository(pool)
	familyRepo := repositories.NewFamilyRepository(pool)
	requestRepo := repositories.NewDistributionRequestRepository(pool)
	taskRepo := repositories.NewTaskRepository(pool)
	alertRepo := repositories.NewAlertRepository(pool)
	logRepo := repositories.NewAdminActionLogRepository(pool)

	// Realtime hub
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	beneficiaryService := services.NewBeneficiaryService(beneficiaryRepo, hub)
	templateService := services.NewPackageTemplateService(templateRepo)
	courierService := services.NewCourierService(courierRepo)
	organizationService := services.NewOrganizationService(organizationRepo)
	familyService := services.NewFamilyService(familyRepo)
	alertService := services.NewAlertService(alertRepo, requestRepo, hub)
	distributionService := services.NewDistributionService(
		requestRepo, taskRepo, beneficiaryRepo, templateRepo, courierRepo, alertService, hub)
	statisticsService := services.NewStatisticsService(
		beneficiaryRepo, requestRepo, taskRepo, courierRepo, templateRepo, alertRepo)

	ensureAdminUser(ctx, userService, userRepo)

	// Handlers
	h := &apphttp.Handlers{
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService, logRepo),
		Beneficiaries: handlers.NewBeneficiaryHandler(beneficiaryService, logRepo),
		Templates:     handlers.NewPackageTemplateHandler(templateService, logRepo),
		Couriers:      handlers.NewCourierHandler(courierService, logRepo),
		Organizations: handlers.NewOrganizationHandler(organizationService, logRepo),
		Families:      handlers.NewFamilyHandler(familyService, logRepo),
		Requests:      handlers.NewDistributionRequestHandler(distributionService, logRepo),
		Tasks:         handlers.NewTaskHandler(distributionService, logRepo),
		Alerts:        handlers.NewAlertHandler(alertService, logRepo),
		Statistics:    handlers.NewStatisticsHandler(statisticsService),
		Health:        handlers.NewHealthHandler(health.NewHealthChecker(pool)),
	}

	authMW := middleware.NewAuthMiddleware(jwtManager, userRepo)
	router := apphttp.NewRouter(cfg, h, authMW, hub)

	// Side servers
	go func() {
		if err := monitoring.NewServer(pool, cfg.Server.MonitoringPort).Start(); err != nil {
			log.Printf("[Main] monitoring server stopped: %v", err)
		}
	}()
	if cfg.Backup.Enabled {
		scheduler, err := backup.NewScheduler(pool, cfg)
		if err != nil {
			log.Printf("[Main] backup scheduler disabled: %v", err)
		} else {
			go scheduler.Start(ctx)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[Main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Main] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] shutdown error: %v", err)
	}
}

// ensureAdminUser seeds the first admin account on an empty install. The
// password comes from the environment so no credential ships in the binary.
func ensureAdminUser(ctx context.Context, users *services.UserService, repo *repositories.UserRepository) {
	existing, err := repo.List(ctx)
	if err != nil {
		log.Printf("[Main] admin seed check failed: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[Main] no users exist and ADMIN_EMAIL/ADMIN_PASSWORD not set; login will be impossible")
		return
	}

	_, err = users.CreateUser(ctx, &models.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     "Administrator",
		Role:     "admin",
	})
	if err != nil {
		log.Printf("[Main] admin seed failed: %v", err)
		return
	}
	log.Printf("[Main] seeded admin account %s", email)
}
