package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/handler"
	"github.com/passforge/passforge-go/internal/middleware"
	"github.com/passforge/passforge-go/internal/service"
	"github.com/passforge/passforge-go/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	r, err := newRouter(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// newRouter wires the services behind one router. Background work started for the
// router stops when ctx is cancelled.
func newRouter(ctx context.Context, cfg config.Config) (http.Handler, error) {
	alphabets, err := config.LoadAlphabets(cfg.AlphabetsFile)
	if err != nil {
		return nil, err
	}
	composer, err := crypto.NewComposer(alphabets, nil)
	if err != nil {
		return nil, err
	}

	genService := service.NewGeneratorService(composer, service.GeneratorConfig{
		MaxLength:      cfg.GeneratorMaxLength,
		MaxCount:       cfg.GeneratorMaxCount,
		MaxHashedCount: cfg.GeneratorMaxHashedCount,
	})
	genHandler := handler.NewGeneratorHandler(genService)

	// One budget per IP across every limited route.
	rateLimit := middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/generate/batch", genHandler.HandleGenerateBatch)
	})

	if cfg.AuthEnabled() {
		authService := service.NewAuthService(cfg.ClientID, cfg.ClientSecretHash, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler := handler.NewAuthHandler(authService)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/api/v1/auth/token", authHandler.HandleToken)
		})
	} else {
		slog.Warn("API_CLIENT_SECRET_HASH not set, token endpoint disabled")
	}

	if cfg.WeatherEnabled() {
		client := weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout)
		weatherHandler := handler.NewWeatherHandler(service.NewWeatherService(client, cfg.WeatherDefaultCity))

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			if cfg.AuthEnabled() {
				r.Use(middleware.JWTAuth(cfg.JWTSecret))
			}
			r.Get("/api/v1/weather", weatherHandler.HandleWeather)
		})
	} else {
		slog.Warn("OWM_API_KEY not set, weather routes disabled")
	}

	return r, nil
}
