package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rendydev404/beatly-backend/internal/services"
	"github.com/rendydev404/beatly-backend/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Server.LogLevel))

	var catalog services.Catalog
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyCatalog(
			config.Credentials.Spotify.ClientID,
			config.Credentials.Spotify.ClientSecret,
		); err == nil {
			catalog = svc
		} else {
			logger.Warn("spotify catalog unavailable", "err", err)
		}
	}

	searcher := services.NewYouTubeSearchService(services.YouTubeSearchOpts{
		BaseURL:        config.Credentials.YouTube.BaseURL,
		APIKeys:        config.Credentials.YouTube.APIKeys,
		Timeout:        time.Duration(config.Resolver.SearchTimeout) * time.Second,
		MaxResults:     config.Resolver.MaxResults,
		RequestsPerSec: config.Resolver.RequestsPerSec,
		Logger:         logger,
	})

	lyrics := services.NewLyricsService(config.Lyrics.BaseURL)

	var textGen services.TextGenerator
	if config.AI.APIKey != "" {
		if svc, err := services.NewGeminiService(services.GeminiOpts{
			APIKey:  config.AI.APIKey,
			Model:   config.AI.Model,
			Timeout: time.Duration(config.AI.TimeoutSeconds) * time.Second,
		}); err == nil {
			textGen = svc
		} else {
			logger.Warn("AI text generation unavailable", "err", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Catalog:  catalog,
		Searcher: searcher,
		Lyrics:   lyrics,
		TextGen:  textGen,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "beatly",
		Usage:    "Backend service for the Beatly music streaming client",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
