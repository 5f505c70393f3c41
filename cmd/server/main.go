package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"so3kit/internal/api"
	"so3kit/internal/engine"
)

var (
	port       = flag.Int("port", 8080, "Port to listen on")
	seed       = flag.Int64("seed", 0, "Random seed (0 = seed from the clock)")
	tickHz     = flag.Float64("tick", 20, "Sample stream rate in Hz")
	configPath = flag.String("config", "", "Optional YAML config file")
)

type fileConfig struct {
	Port   int     `yaml:"port"`
	Seed   int64   `yaml:"seed"`
	TickHz float64 `yaml:"tickHz"`
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Port: *port, Seed: *seed, TickHz: *tickHz}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	flag.Parse()

	cfg := fileConfig{Port: *port, Seed: *seed, TickHz: *tickHz}
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("config error: %v", err)
		}
	}

	// Create evaluation engine
	eng := engine.New(engine.Config{
		Seed:   cfg.Seed,
		TickHz: cfg.TickHz,
	})

	// Create API server
	server := api.NewServer(eng)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Handler(),
	}

	// Start engine in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := eng.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("engine error: %v", err)
		}
	}()

	go func() {
		log.Printf("Starting HTTP server on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	cancel()

	log.Println("Shutdown complete")
}
