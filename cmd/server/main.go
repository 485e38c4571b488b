package main

import (
	"flag"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/app"
	"github.com/shrimpsizemoose/skola/internal/handlers"
	"github.com/shrimpsizemoose/skola/internal/views"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to start: %v", err)
	}
	defer service.Close()

	renderer, err := views.New(service.Config.Display.DateFormat)
	if err != nil {
		logger.Error.Fatalf("Failed to load templates: %v", err)
	}

	router := handlers.NewRouter(service.Store, renderer)

	logger.Info.Printf("Starting skola server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, router); err != nil {
		logger.Error.Fatalf("Skola server failed: %v", err)
	}
}
