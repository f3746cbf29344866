package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umeshkhanal/rumooz/internal/config"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/events"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/mail"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/storage"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/throttle"
	"github.com/umeshkhanal/rumooz/internal/logger"
	"github.com/umeshkhanal/rumooz/internal/routes"
	"github.com/umeshkhanal/rumooz/internal/usecase/admin"
	"github.com/umeshkhanal/rumooz/internal/usecase/lead"
	"github.com/umeshkhanal/rumooz/internal/usecase/team"
	"github.com/umeshkhanal/rumooz/pkg/mqtt"
	"github.com/umeshkhanal/rumooz/pkg/token"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}
	if cfg.Mail.Host == "" {
		logger.Warn("MAIL_HOST is not set, verification codes and lead notifications will fail to send")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := mail.NewSMTPNotifier(cfg.Mail, logger.Named("mail"))
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL(), token.WithIssuer(cfg.JWT.Issuer))

	adminRepository := postgres.NewAdminRepository(db)
	adminService := admin.NewService(adminRepository, tokens, notifier, cfg.OTP,
		admin.WithLimiter(newCodeLimiter(ctx, cfg)),
	)

	owner, err := adminService.EnsureDefaultAccount(ctx, admin.Seed{
		Username:    cfg.Admin.Username,
		Email:       cfg.Admin.Email,
		Password:    cfg.Admin.Password,
		ContactMail: cfg.Admin.ContactMail,
	})
	if err != nil {
		logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	eventMetrics := events.NewMetricsTracker()
	publisher, closePublisher := newLeadPublisher(cfg, eventMetrics)
	defer closePublisher()

	leadService := lead.NewService(
		postgres.NewRequestRepository(db),
		postgres.NewContactRepository(db),
		adminRepository,
		owner.ID,
		notifier,
		publisher,
	)
	defer leadService.Wait()

	photos, err := storage.NewPhotoStore(afero.NewOsFs(), cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		logger.Fatal("Failed to prepare uploads directory", zap.Error(err))
	}
	teamService := team.NewService(postgres.NewTeamRepository(db), photos)

	go adminService.StartCodeCleanupJob(ctx, cfg.OTP.CleanupInterval())

	services := &routes.Services{
		Admin:  adminService,
		Lead:   leadService,
		Team:   teamService,
		Photos: photos,
	}
	if cfg.MQTT.Broker != "" {
		services.LeadEvents = eventMetrics
	}
	router := routes.SetupRoutes(cfg, db, services)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "5000"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}

// newCodeLimiter shares the send-code budget through Redis when REDIS_ADDR is set.
func newCodeLimiter(ctx context.Context, cfg *config.Config) throttle.Limiter {
	if cfg.Redis.Addr != "" {
		client, err := throttle.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			logger.Info("Using Redis code throttle", zap.String("addr", cfg.Redis.Addr))
			return throttle.NewRedisLimiter(client, cfg.OTP.SendLimit, cfg.OTP.SendWindow())
		}
		logger.Warn("Redis unavailable, falling back to in-memory code throttle", zap.Error(err))
	}
	return throttle.NewMemoryLimiter(cfg.OTP.SendLimit, cfg.OTP.SendWindow())
}

func newLeadPublisher(cfg *config.Config, metrics *events.MetricsTracker) (events.Publisher, func()) {
	if cfg.MQTT.Broker == "" {
		return events.NoopPublisher{}, func() {}
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.MQTT.Broker,
		ClientID:             cfg.MQTT.ClientID,
		Username:             cfg.MQTT.Username,
		Password:             cfg.MQTT.Password,
		CleanSession:         true,
		KeepAlive:            60,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	}, logger.Named("mqtt"))

	if err := client.Connect(); err != nil {
		logger.Warn("MQTT broker unavailable, lead events disabled", zap.Error(err))
		return events.NoopPublisher{}, func() {}
	}

	return events.NewMQTTPublisher(client, cfg.MQTT.TopicPrefix, metrics), client.Disconnect
}
