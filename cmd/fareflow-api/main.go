// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fareflow/internal/config"
	httptransport "fareflow/internal/http"
	"fareflow/internal/infra"
	"fareflow/internal/modules/event"
	"fareflow/internal/modules/fare"
	"fareflow/internal/modules/ledger"
	"fareflow/internal/modules/multiplier"
	"fareflow/internal/modules/vehicletype"
)

func main() {
	// A missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := infra.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	vehicleSvc := vehicletype.NewService(vehicletype.NewStore(dbPool))

	var holidays multiplier.HolidayCalendar
	if len(cfg.Rules.Holidays) > 0 {
		holidays = multiplier.NewFixedDateHolidays(cfg.Rules.Holidays)
	}
	var weather multiplier.WeatherRule
	if len(cfg.Rules.BadWeather) > 0 {
		weather = multiplier.NewConditionListWeather(cfg.Rules.BadWeather)
	}
	var demand multiplier.DemandGauge
	if cfg.Redis.Addr != "" && cfg.Rules.DemandRatio > 0 {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		demand = multiplier.NewRedisDemandGauge(redisClient, cfg.Rules.DemandRatio)
	}
	multiplierSvc := multiplier.NewService(multiplier.NewStore(dbPool), holidays, weather, demand)

	var areas event.AreaClassifier = event.NewBoundingBoxClassifier()
	if cfg.Maps.APIKey != "" {
		geocode, err := event.NewGeocodeAreaClassifier(cfg.Maps.APIKey, areas)
		if err != nil {
			logger.Error("maps client init failed", "err", err)
			os.Exit(1)
		}
		areas = geocode
	}
	eventSvc := event.NewService(event.NewStore(dbPool), areas)

	ledgerSvc := ledger.NewService(ledger.NewStore(dbPool))
	fareSvc := fare.NewService(vehicleSvc, multiplierSvc, eventSvc, ledgerSvc, logger)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Fare:         fareSvc,
		VehicleTypes: vehicleSvc,
		Multipliers:  multiplierSvc,
		Events:       eventSvc,
		Ledger:       ledgerSvc,
		Log:          logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
