package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/course-api/internal/config"
	"github.com/msomdec/course-api/internal/handler"
	"github.com/msomdec/course-api/internal/repository/memory"
	"github.com/msomdec/course-api/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.UsingDefaultSecret() {
		slog.Warn("JWT_SECRET is not set, signing tokens with the development fallback secret")
	}

	// Volatile store; everything is rebuilt on restart.
	db := memory.New()

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, service.WithTokenTTL(cfg.TokenTTL))
	authService := service.NewAuthService(db.Users(), hasher, tokens)
	userService := service.NewUserService(db.Users(), hasher)
	courseService := service.NewCourseService(db.Courses())

	created, err := authService.SeedAdmin(context.Background(), service.AdminAccount{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("admin account created", "email", cfg.AdminEmail)
	}

	var limiter *service.TokenBucket
	if cfg.AuthRateLimit > 0 {
		limiter = service.NewTokenBucket(cfg.AuthRateLimit, cfg.AuthRateBurst)
		defer limiter.Close()
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, tokens, limiter, authService, userService, courseService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "admin", cfg.AdminEmail)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
