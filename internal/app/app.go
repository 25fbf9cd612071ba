package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-docs-api/internal/config"
	"go-docs-api/internal/database"
	"go-docs-api/internal/handler"
	"go-docs-api/internal/middleware"
	"go-docs-api/internal/password"
	"go-docs-api/internal/repository"
	"go-docs-api/internal/router"
	"go-docs-api/internal/service"
	"go-docs-api/internal/storage"
	"go-docs-api/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.New(cfg.PublicRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	slog.Info("database ready")

	tokenManager, err := token.NewManager(token.Config{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	hasher := password.NewSHA256Hasher()
	authService := service.NewAuthService(userRepo, hasher, tokenManager)
	userService := service.NewUserService(userRepo, hasher)
	documentService := service.NewDocumentService(documentRepo)
	uploadService := service.NewUploadService(store)
	notifyService := service.NewNotifyService(service.NotifyConfig{
		WebhookURL:  cfg.WebhookURL,
		AccessToken: cfg.WebhookAccessToken,
		Recipient:   cfg.WebhookRecipient,
		Timeout:     cfg.WebhookTimeout,
	})

	authMiddleware := middleware.NewAuthMiddleware(tokenManager)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Document: handler.NewDocumentHandler(documentService),
		Upload:   handler.NewUploadHandler(uploadService, cfg.MaxUploadSize),
		Notify:   handler.NewNotifyHandler(notifyService),
	}, store.RootAbs())

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.db.Close()

	slog.Info("server stopped")
	return nil
}
