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

	"github.com/AntonZhuravskiy/web-larek/internal/cart"
	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
	"github.com/AntonZhuravskiy/web-larek/internal/client"
	"github.com/AntonZhuravskiy/web-larek/internal/httpapi"
	"github.com/AntonZhuravskiy/web-larek/internal/storefront"
)

type Config struct {
	HTTPPort        string
	CatalogAPIURL   string
	CDNURL          string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogAPIURL:   getEnv("CATALOG_API_URL", "http://localhost:8081"),
		CDNURL:          getEnv("CDN_URL", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := loadConfig()

	api := client.NewClient(cfg.CatalogAPIURL, cfg.CDNURL, cfg.RequestTimeout)

	svc := storefront.NewService(
		catalog.NewStore(),
		cart.NewLedger(),
		checkout.NewSession(),
		api,
		api,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := svc.LoadCatalog(ctx); err != nil {
		cancel()
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	cancel()

	router := httpapi.NewRouter(httpapi.NewHandler(svc), cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
