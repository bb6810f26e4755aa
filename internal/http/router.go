// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fareflow/internal/http/handlers"
	"fareflow/internal/http/middleware"
	"fareflow/internal/modules/event"
	"fareflow/internal/modules/fare"
	"fareflow/internal/modules/ledger"
	"fareflow/internal/modules/multiplier"
	"fareflow/internal/modules/vehicletype"
)

type RouterDeps struct {
	Fare         *fare.Service
	VehicleTypes *vehicletype.Service
	Multipliers  *multiplier.Service
	Events       *event.Service
	Ledger       *ledger.Service
	Log          *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(deps.Log), middleware.Recovery(deps.Log))

	api := r.Group("/api")

	pricing := handlers.NewPricingHandler(deps.Fare, deps.Ledger, deps.Log)
	api.POST("/pricing/calculate", pricing.Calculate)
	api.GET("/pricing/history/trip/:tripID", pricing.HistoryByTrip)
	api.GET("/pricing/history/vehicle-type/:id", pricing.HistoryByVehicleType)
	api.GET("/pricing/statistics/:id", pricing.Statistics)
	api.GET("/pricing/multiplier-usage/:id", pricing.MultiplierUsage)

	vehicles := handlers.NewVehicleTypeHandler(deps.VehicleTypes, deps.Log)
	api.POST("/vehicle-types", vehicles.Create)
	api.GET("/vehicle-types", vehicles.List)
	api.GET("/vehicle-types/:id", vehicles.Get)
	api.PUT("/vehicle-types/:id", vehicles.Update)
	api.DELETE("/vehicle-types/:id", vehicles.Delete)

	multipliers := handlers.NewMultiplierHandler(deps.Multipliers, deps.Log)
	api.POST("/multipliers", multipliers.Create)
	api.GET("/multipliers", multipliers.List)
	api.GET("/multipliers/:id", multipliers.Get)
	api.PUT("/multipliers/:id", multipliers.Update)
	api.DELETE("/multipliers/:id", multipliers.Delete)

	events := handlers.NewEventHandler(deps.Events, deps.Log)
	api.POST("/events", events.Create)
	api.GET("/events", events.List)
	api.GET("/events/active", events.ListActive)
	api.GET("/events/:id", events.Get)
	api.PUT("/events/:id", events.Update)
	api.DELETE("/events/:id", events.Delete)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
