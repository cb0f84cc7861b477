package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/handler"
	appointmentHandler "github.com/jwalitptl/patient-portal/internal/handler/appointment"
	billingHandler "github.com/jwalitptl/patient-portal/internal/handler/billing"
	directoryHandler "github.com/jwalitptl/patient-portal/internal/handler/directory"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/repository/postgres"
	"github.com/jwalitptl/patient-portal/internal/router"
	appointmentService "github.com/jwalitptl/patient-portal/internal/service/appointment"
	billingService "github.com/jwalitptl/patient-portal/internal/service/billing"
	directoryService "github.com/jwalitptl/patient-portal/internal/service/directory"
	patientService "github.com/jwalitptl/patient-portal/internal/service/patient"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	"github.com/jwalitptl/patient-portal/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// The directory cache is best-effort: without Redis the portal still
	// works, every doctor lookup just hits the database.
	redisClient := newRedisClient(cfg.Redis)

	patientRepo := postgres.NewPatientRepository(db)
	directoryRepo := postgres.NewDirectoryRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	billRepo := postgres.NewBillRepository(db)

	patientSvc := patientService.NewService(patientRepo)
	directorySvc := directoryService.NewService(
		directoryRepo,
		redisClient,
		time.Duration(cfg.Redis.DoctorCacheTTLS)*time.Second,
		appLogger,
	)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	billingSvc := billingService.NewService(billRepo)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, patientSvc)

	h := handler.NewHandler(db)
	directoryH := directoryHandler.NewHandler(directorySvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	billingH := billingHandler.NewHandler(billingSvc)

	routerCfg := router.DefaultRouterConfig()
	routerCfg.RequestTimeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	r := router.NewRouter(
		authMiddleware,
		directoryH,
		appointmentH,
		billingH,
		h,
		routerCfg,
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("patient portal listening")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info().Msg("server exited properly")
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid redis URL, directory cache disabled")
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, directory cache disabled")
		_ = client.Close()
		return nil
	}

	return client
}
