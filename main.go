package main

import (
	"log"
	"math_tutor_backend/internal/app"
	"math_tutor_backend/internal/config"
	"math_tutor_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
