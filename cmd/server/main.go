package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tayninh-assistant/server/internal/assistant"
	"github.com/tayninh-assistant/server/internal/httpserver"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg assistant.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init()

	eng, cleanup, err := assistant.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build assistant: %v", err)
	}
	defer cleanup()

	srv := httpserver.New(cfg.Server, eng)
	if err := srv.Run(); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
