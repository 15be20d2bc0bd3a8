package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/gateway"
	"github.com/api-sage/banco-digital/src/internal/adapter/http/controller"
	"github.com/api-sage/banco-digital/src/internal/adapter/http/middleware"
	"github.com/api-sage/banco-digital/src/internal/adapter/http/router"
	"github.com/api-sage/banco-digital/src/internal/adapter/repository/memory"
	"github.com/api-sage/banco-digital/src/internal/config"
	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/api-sage/banco-digital/src/internal/tracing"
	"github.com/api-sage/banco-digital/src/internal/usecase/services"
	"go.uber.org/multierr"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Configure(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		logger.Error("server stopped unexpectedly", err, nil)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	shutdownTracing := func(context.Context) error { return nil }
	if cfg.TracingEnabled {
		shutdown, err := tracing.Init(context.Background(), cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		shutdownTracing = shutdown
	}

	seeded, err := memory.SeedUsers(memory.DemoUsers(), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	userRepo, err := memory.NewUserRepository(seeded...)
	if err != nil {
		return fmt.Errorf("build user directory: %w", err)
	}
	sessionRepo := memory.NewSessionRepository(cfg.MaxSessions)

	transferGateway := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout)

	authService := services.NewAuthService(userRepo, sessionRepo)
	accountService := services.NewAccountService(userRepo, sessionRepo)
	transferService := services.NewTransferService(userRepo, sessionRepo, transferGateway, services.TransferOptions{
		Currency:               cfg.TransferCurrency,
		SettleDelay:            cfg.FallbackSettleDelay,
		CreditLocalBeneficiary: cfg.LocalBeneficiaryCredit,
	})

	mux := router.New(
		controller.NewAuthController(authService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	var handler http.Handler = tracing.Handler(mux, cfg.ServiceName)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.Recover()(handler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", logger.Fields{
			"addr":        cfg.Addr(),
			"gateway":     cfg.GatewayBaseURL,
			"settleDelay": cfg.FallbackSettleDelay.String(),
		})
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", logger.Fields{"signal": sig.String()})
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return multierr.Append(err, shutdownTracing(context.Background()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := multierr.Append(srv.Shutdown(shutdownCtx), shutdownTracing(shutdownCtx)); err != nil {
		logger.Error("graceful shutdown failed", err, nil)
		return err
	}
	logger.Info("server stopped", nil)
	return nil
}
