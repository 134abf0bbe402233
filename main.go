package main

import (
	"log"
	"os"

	"github.com/mertakman/go-sessionsense/pkg/config"
	"github.com/mertakman/go-sessionsense/pkg/engine"
	"github.com/mertakman/go-sessionsense/pkg/geoip"
	"github.com/mertakman/go-sessionsense/pkg/heuristics"
	"github.com/mertakman/go-sessionsense/pkg/ingest"
	"github.com/mertakman/go-sessionsense/pkg/logging"
	"github.com/mertakman/go-sessionsense/pkg/storage"
)

func main() {
	// 1. Configuration: sessionsense.toml if present, defaults otherwise.
	cfg, err := config.Load(os.Getenv("SESSIONSENSE_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if addr := os.Getenv("SESSIONSENSE_ADDRESS"); addr != "" {
		cfg.Server.Address = addr
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("logging error: %v", err)
	}

	// 2. Optional GeoIP service for the environment cross-check. The demo
	// works fine without the databases; the heuristic just stays silent.
	var geoService *geoip.Service
	if cfg.GeoIP.CityDB != "" || cfg.GeoIP.ASNDB != "" {
		geoService, err = geoip.NewService(cfg.GeoIP.CityDB, cfg.GeoIP.ASNDB)
		if err != nil {
			log.Fatalf("geoip error: %v", err)
		}
		defer geoService.Close()
	}

	// 3. In-memory store and engine. Everything here dies with the process.
	store := storage.NewMemoryStore()
	eng := engine.New(geoService, store)
	configureHeuristics(eng, cfg.Thresholds)

	// 4. Ingest API.
	server := ingest.NewServer(eng, store, logger)
	if err := server.Start(cfg.Server.Address); err != nil {
		log.Fatal(err)
	}
}

// configureHeuristics registers the shipped heuristics with the configured
// thresholds. They run in this order; later heuristics win ties per trait.
func configureHeuristics(eng *engine.Engine, th config.ThresholdConfig) {
	eng.AddHeuristic(heuristics.NewTypingTempo(th.TypingYoungMaxMs, th.TypingMidMaxMs, th.MinKeystrokes))
	eng.AddHeuristic(heuristics.NewStressComposite(
		th.MaxCorrectionRate, th.MaxPointerCV, th.MaxKeyCV, th.MinPointerSamples, th.MinKeystrokes))
	eng.AddHeuristic(heuristics.NewDeviceClass())
	eng.AddHeuristic(heuristics.NewInputAutomation(th.AutomationStdDevMs, th.AutomationGridMax, th.MinKeystrokes))
	eng.AddHeuristic(heuristics.NewFingerprintDrift())
	eng.AddHeuristic(heuristics.NewEnvironmentMismatch())
}
