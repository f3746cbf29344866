// Command createadmin creates the admin account or resets its email and password.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/umeshkhanal/rumooz/internal/config"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/mail"
	"github.com/umeshkhanal/rumooz/internal/logger"
	"github.com/umeshkhanal/rumooz/internal/usecase/admin"
	"github.com/umeshkhanal/rumooz/pkg/token"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	username := flag.String("username", cfg.Admin.Username, "admin username")
	email := flag.String("email", cfg.Admin.Email, "login email the verification codes are sent to")
	password := flag.String("password", "", "new password (required)")
	contactMail := flag.String("contact-mail", cfg.Admin.ContactMail, "address receiving lead notifications")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "--password is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	service := admin.NewService(
		postgres.NewAdminRepository(db),
		token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL(), token.WithIssuer(cfg.JWT.Issuer)),
		mail.NewSMTPNotifier(cfg.Mail, logger.Named("mail")),
		cfg.OTP,
	)

	account, created, err := service.UpsertAccount(context.Background(), admin.Seed{
		Username:    *username,
		Email:       *email,
		Password:    *password,
		ContactMail: *contactMail,
	})
	if err != nil {
		logger.Fatal("Failed to save admin account", zap.Error(err))
	}

	action := "updated"
	if created {
		action = "created"
	}
	fmt.Printf("Admin %q %s (id %d, email %s)\n", account.Username, action, account.ID, account.Email)
}
