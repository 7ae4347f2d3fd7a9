// ABOUTME: Main entry point for the PaceReader API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pacereader-api/api"
	"pacereader-api/core/extractor"
	"pacereader-api/core/feed"
	"pacereader-api/core/interfaces"
	"pacereader-api/core/reading"
	"pacereader-api/infrastructure/cache/memory"
	"pacereader-api/infrastructure/cache/redis"
	stdhttp "pacereader-api/infrastructure/http/standard"
	logrusimpl "pacereader-api/infrastructure/logger/logrus"
	"pacereader-api/infrastructure/speech/googletts"
	"pacereader-api/infrastructure/storage/sqlite"
	"pacereader-api/infrastructure/summary/ollama"
	"pacereader-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrusimpl.NewLogrusLogger(cfg.LogLevel)
	logger.Info("Starting PaceReader API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"sqlite":     cfg.Storage.SQLitePath,
	})

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	storage, err := sqlite.NewStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer storage.Close()

	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Server.FetchTimeout) * time.Second)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
		Storage:    storage,
	}

	extractionService := extractor.NewService(deps)
	feedService := feed.NewService(deps)

	var summarizer interfaces.Summarizer
	if cfg.Summary.OllamaHost != "" {
		summarizer = ollama.NewClient(cfg.Summary.OllamaHost, cfg.Summary.Model, httpClient, logger)
		logger.Info("Summarization enabled", map[string]interface{}{
			"host":  cfg.Summary.OllamaHost,
			"model": cfg.Summary.Model,
		})
	}

	sessions := reading.NewManager(deps, func() interfaces.SpeechSynthesizer {
		synth, err := googletts.NewSynthesizer(context.Background(),
			cfg.TTS.LanguageCode, cfg.TTS.DefaultVoice, nil, logger)
		if err != nil {
			logger.Error("Failed to create speech synthesizer", map[string]interface{}{
				"error": err.Error(),
			})
			return &noopSynthesizer{}
		}
		return synth
	})

	server := api.NewServer(cfg.Server, logger,
		api.Handlers(extractionService, summarizer, deps, sessions, feedService)...)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Persist in-flight reading positions before the process exits.
	sessions.CloseAll(ctx)

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// noopSynthesizer keeps reading sessions usable when no speech backend
// is reachable; utterances complete immediately without audio, so
// sessions chain through sentences instead of hanging on the first.
type noopSynthesizer struct {
	mu        sync.Mutex
	callbacks interfaces.SpeechCallbacks
	gen       int
}

func (n *noopSynthesizer) Speak(text string, rateMultiplier float64, voiceID string) error {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.mu.Unlock()

	go func() {
		n.mu.Lock()
		live := gen == n.gen
		onComplete := n.callbacks.OnComplete
		n.mu.Unlock()
		if live && onComplete != nil {
			onComplete()
		}
	}()
	return nil
}

// Stop invalidates the pending completion, matching the engine
// contract that stopped utterances never complete.
func (n *noopSynthesizer) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
}

func (n *noopSynthesizer) SetCallbacks(callbacks interfaces.SpeechCallbacks) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callbacks = callbacks
}
