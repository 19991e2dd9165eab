package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arbarak/nexagestion-sub003/internal/app"
	"github.com/arbarak/nexagestion-sub003/internal/auth"
	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/clients"
	"github.com/arbarak/nexagestion-sub003/internal/invoices"
	"github.com/arbarak/nexagestion-sub003/internal/observability"
	"github.com/arbarak/nexagestion-sub003/internal/platform/cache"
	"github.com/arbarak/nexagestion-sub003/internal/platform/db"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
	"github.com/arbarak/nexagestion-sub003/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "nexa_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	authzMW := authz.Middleware{Logger: logger, Observer: metrics, Auditor: auditLogger}

	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(logger, auth.NewService(authRepo), sessionManager)

	clientsService := clients.NewService(clients.NewRepository(pool), auditLogger, logger)
	clientsHandler := clients.NewHandler(logger, clientsService, authzMW)

	invoiceService := invoices.NewService(invoices.NewRepository(pool), auditLogger, logger)
	invoiceHandler := invoices.NewHandler(logger, invoiceService, authzMW)

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, authzMW)

	router := app.NewRouter(app.RouterParams{
		Config:         cfg,
		SessionManager: sessionManager,
		AuthHandler:    authHandler,
		ClientsHandler: clientsHandler,
		InvoiceHandler: invoiceHandler,
		UsersHandler:   usersHandler,
		Metrics:        metrics,
		Middleware: app.MiddlewareConfig{
			Logger:         logger,
			Config:         cfg,
			SessionManager: sessionManager,
			Metrics:        metrics,
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server run", slog.Any("error", err))
		os.Exit(1)
	}
}
