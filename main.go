package main

import (
	"log"

	"github.com/joho/godotenv"

	"invoicer/cmd"
	"invoicer/internal/config"
	"invoicer/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use default logger config if main config fails
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		mainLogger := logger.WithComponent("main")
		mainLogger.Warn().Err(err).Msg("Could not load configuration, using defaults")
	} else {
		// Initialize logger with configuration
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	// Execute CLI commands
	cmd.Execute()
}
