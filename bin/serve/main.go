package main

import (
	"log"

	"school-gallery/cmd"
	"school-gallery/pkg/config"
	"school-gallery/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	if err := services.InitService(cfg); err != nil {
		log.Fatalf("Failed to initialize gallery: %v", err)
	}
	defer services.Shutdown()

	if err := cmd.ServeWebsite(cfg, services.Default()); err != nil {
		log.Printf("Server error: %v", err)
	}
}
