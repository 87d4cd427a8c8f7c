package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"maganghub-radar/internal/ai"
	"maganghub-radar/internal/api"
	"maganghub-radar/internal/config"
	"maganghub-radar/internal/core"
	"maganghub-radar/internal/logger"
	"maganghub-radar/internal/maganghub"
)

func main() {
	// Optional local overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(true, cfg.Debug)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// AI is optional: without a key the server still serves listings,
	// classification is skipped and recommendations return 503.
	var aiClient ai.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Error("failed to initialize gemini client, AI features disabled", zap.Error(err))
			aiClient = ai.NewDisabledClient()
		} else {
			log.Info("gemini client initialized")
			aiClient = gemini
		}
	} else {
		log.Info("GEMINI_API_KEY not set, AI features disabled")
		aiClient = ai.NewDisabledClient()
	}

	fetcher := maganghub.NewClient(log, cfg.ProvinceCode, cfg.MaxPages)
	cache := core.NewCache(fetcher, cfg.CacheTTL, log)

	srv := api.NewServer(cache, aiClient, log)

	log.Info("starting server",
		zap.String("port", cfg.Port),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_pages", cfg.MaxPages),
	)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}
