package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/auth2api/auth2-server/internal/config"
	"github.com/auth2api/auth2-server/internal/email"
	"github.com/auth2api/auth2-server/internal/logger"
	"github.com/auth2api/auth2-server/internal/repository/postgres"
	"github.com/auth2api/auth2-server/internal/service"
	"github.com/auth2api/auth2-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	passwordResetRepo := postgres.NewPasswordResetRepository(db)

	jwt, err := token.New(token.Config{
		Algorithm:            cfg.JWT.Algorithm,
		AccessTokenLifetime:  cfg.JWT.AccessTokenLifetime,
		RefreshTokenLifetime: cfg.JWT.RefreshTokenLifetime,
		SecretKey:            cfg.JWT.SecretKey,
		PrivateKey:           cfg.JWT.PrivateKey,
		PublicKey:            cfg.JWT.PublicKey,
	})
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	emailService, err := email.NewSMTP(cfg.SMTP, cfg.ForgottenPassword.EmailFrom, cfg.ForgottenPassword.BaseURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize email service", "error", err)
	}

	authService := service.NewAuth(userRepo, refreshTokenRepo, passwordResetRepo, emailService, jwt, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runCleanup(ctx, logger, authService, cfg.Cleanup.Interval)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	wg.Wait()
	logger.Info("shutdown complete")
}

// runCleanup sweeps expired refresh tokens on a fixed interval until
// the context is cancelled.
func runCleanup(ctx context.Context, logger *logger.Logger, auth *service.Auth, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("starting expired refresh token cleanup", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.CleanExpiredRefreshTokens(ctx); err != nil {
				logger.Error("failed to clean expired refresh tokens", "error", err)
			}
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
