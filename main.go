package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "zoya/app/configs"
	"zoya/app/core/executor"
	"zoya/app/core/gemini"
	"zoya/app/core/hub"
	"zoya/app/core/intent"
	"zoya/app/core/interaction/http"
	"zoya/app/core/storage"
	"zoya/app/pkg/logger"
)

func main() {
	if err := logger.Init("output/logs"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Zoya Assistant Starting...")

	cfgManager, err := config.NewManager(config.DefaultPath())
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	cfg := cfgManager.Get()

	store, err := newStore(cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized (driver=%s)", cfg.Storage.Driver)

	var provider *gemini.Client
	if key := cfg.Provider.ResolvedAPIKey(); key != "" {
		provider = gemini.NewClient(key, cfg.Provider.BaseURL, cfg.Provider.Model,
			time.Duration(cfg.Provider.TimeoutSec)*time.Second)
		logger.Info("Provider client configured (model=%s)", cfg.Provider.Model)
	} else {
		logger.Info("No provider API key, classification runs on the local fallback only")
	}

	var classifier *intent.Classifier
	var exec *executor.Executor
	var assistant http.Assistant
	var classifierUp func() bool
	cooldown := time.Duration(cfg.Classifier.CooldownSec) * time.Second
	if provider != nil {
		classifier = intent.NewClassifier(provider, cooldown)
		exec = executor.New(classifier, store, provider)
		assistant = provider
		classifierUp = classifier.Available
	} else {
		classifier = intent.NewClassifier(nil, cooldown)
		exec = executor.New(classifier, store, nil)
	}

	eventHub := hub.New()
	server := http.NewServer(cfg.Server.Host, cfg.Server.Port, store, exec, eventHub, assistant, classifierUp)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Error("HTTP server crashed: %v", err)
			os.Exit(1)
		}
	}()

	logger.Info("Zoya is ready to serve.")
	fmt.Printf("- REST API:  http://%s:%d/api\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("- WebSocket: ws://%s:%d/ws\n", cfg.Server.Host, cfg.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received signal: %v. Zoya Shutting Down...", sig)
	cancel()
	// Give the server's shutdown goroutine a moment to drain.
	time.Sleep(100 * time.Millisecond)
}

func newStore(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.DataDir, cfg.MaxConns, storage.NewSeededMemoryStore())
	default:
		return storage.NewSeededMemoryStore(), nil
	}
}
