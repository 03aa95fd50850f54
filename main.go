package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"example.com/cafe-admin/internal/app"
	"example.com/cafe-admin/internal/config"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env file: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	cfg := config.MustLoad(path)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("failed to run application: %v", err)
	}
}
