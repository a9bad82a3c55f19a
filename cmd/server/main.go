package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"html-dsl/internal/api"
	"html-dsl/internal/extract"
	"html-dsl/internal/logger"
)

type config struct {
	Port      string
	RateLimit float64
	LogLevel  string
}

func loadConfig() (config, error) {
	cfg := config{
		Port:      envOr("PORT", "8080"),
		RateLimit: 10,
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return config{}, fmt.Errorf("parsing RATE_LIMIT: %w", err)
		}
		if limit <= 0 {
			return config{}, fmt.Errorf("RATE_LIMIT must be positive, got %v", limit)
		}
		cfg.RateLimit = limit
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRouter(cfg config, handler *api.Handler) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggerMiddleware())
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)+1)))

	r.POST("/api/select", handler.Select)
	r.POST("/api/extract", handler.Extract)

	return r
}

func main() {
	logger.Init()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(cfg, api.NewHandler(extract.NewExtractor()))

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
