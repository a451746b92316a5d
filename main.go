package main

import (
	"flag"
	"log/slog"

	"CartPilot/entity"
	"CartPilot/impl/core"
	"CartPilot/internal/config"
	"CartPilot/internal/http-server/api"
	"CartPilot/internal/lib/logger"
	"CartPilot/internal/lib/sl"
	"CartPilot/internal/service/catalog"
	"CartPilot/internal/service/handoff"
	"CartPilot/internal/service/session"
	"CartPilot/internal/ws"
	"CartPilot/journey"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting cartpilot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	catalogService, err := catalog.NewCatalogService(lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("catalog service")
		return
	}

	shopper, ok := catalogService.Customer(conf.Journey.ShopperID)
	if !ok {
		lg.Error("demo shopper not in catalog", slog.String("shopper_id", conf.Journey.ShopperID))
		shopper = entity.Customer{ID: conf.Journey.ShopperID, Name: "Guest"}
	}

	handoffStore := handoff.NewStore(lg)

	hub := ws.NewHub(lg)
	go hub.Run()
	handoffStore.Subscribe(hub.BroadcastSideEffect)

	engine := journey.NewEngine(catalogService, shopper, lg)

	var executor journey.StepExecutor = journey.SimulatedExecutor{}
	if !conf.Journey.SimulatedDelays {
		executor = journey.ImmediateExecutor{}
	}

	sessions := session.NewManager(engine, executor, handoffStore, lg)
	sessions.SetBroadcaster(hub)

	handler := core.New(lg)
	handler.SetSessionManager(sessions)
	handler.SetCatalogService(catalogService)
	handler.SetHandoffStore(handoffStore)

	lg.With(
		slog.String("shopper", shopper.Name),
		slog.Bool("simulated_delays", conf.Journey.SimulatedDelays),
	).Info("journey engine initialized")

	// *** blocking start with http server ***
	if err := api.New(conf, lg, handler, hub); err != nil {
		lg.With(sl.Err(err)).Error("api server stopped")
	}
}
