package main

import (
	"context"
	"log"

	"fraudlens/internal/config"
	"fraudlens/internal/container"
	"fraudlens/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Init(context.Background()); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Initialize web console
	consoleApp, err := ui.NewApp(ui.Config{
		Port:           appConfig.Server.Port,
		UploadMaxBytes: appConfig.Upload.MaxBytes,
	}, appContainer.Analyzer, appContainer.Dashboard)
	if err != nil {
		log.Fatalf("Failed to initialize console: %v", err)
	}

	log.Fatal(consoleApp.Start())
}
