package main

import (
	"log"

	"github.com/gund999/TestMeasurementController/internal/config"
	"github.com/gund999/TestMeasurementController/internal/gui"
	"github.com/gund999/TestMeasurementController/internal/logger"
)

var version = "1.0.0"

func main() {
	logger.Init()

	log.Printf("Test & Measurement Controller v%s", version)

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = config.Default()
	}
	logger.SetLevel(cfg.LogLevel)

	app := gui.NewApp(cfg, version)
	app.ShowAndRun()
}
