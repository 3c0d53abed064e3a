package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/config"
	"github.com/tensorplex-labs/datasynth/internal/export"
	"github.com/tensorplex-labs/datasynth/internal/generator"
	"github.com/tensorplex-labs/datasynth/internal/llm"
	"github.com/tensorplex-labs/datasynth/internal/server"
	"github.com/tensorplex-labs/datasynth/internal/utils/logger"
)

func main() {
	envErr := godotenv.Load()

	// cancelled on SIGINT/SIGTERM; everything below shuts down from it
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	closer, err := logger.Init(cfg.LogEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init logger")
	}
	defer closer.Close()

	if envErr != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}
	log.Info().Msg("Starting up the Synthetic Dataset Generator API")

	client, err := llm.New(ctx, &cfg.LLMEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init language model client")
	}
	log.Info().Str("model", client.Name()).Msg("language model client ready")

	gen := generator.New(client, cfg.GeneratorEnvConfig)
	files := export.TempFiles{Dir: cfg.TempDir}

	sweeper := export.Sweeper{
		Dir:      cfg.TempDir,
		MaxAge:   cfg.MaxAge,
		Interval: cfg.SweepInterval,
	}
	go sweeper.Run(ctx)

	s := server.NewServer(&cfg.ServerEnvConfig, cfg.APIKey, gen, files)
	if err := s.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("Shutting down the Synthetic Dataset Generator API")
}
