package main

import (
	"log"

	"github.com/jengzang/incident-map-go/internal/api"
	"github.com/jengzang/incident-map-go/internal/config"
	"github.com/jengzang/incident-map-go/internal/database"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	router := api.SetupRouter()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
