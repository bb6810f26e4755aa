// README: Pricing handlers for fare calculation and ledger queries.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fareflow/internal/modules/fare"
	"fareflow/internal/modules/ledger"
	"fareflow/internal/types"
)

type PricingHandler struct {
	fare   *fare.Service
	ledger *ledger.Service
	log    *slog.Logger
}

func NewPricingHandler(fareSvc *fare.Service, ledgerSvc *ledger.Service, log *slog.Logger) *PricingHandler {
	return &PricingHandler{fare: fareSvc, ledger: ledgerSvc, log: log}
}

type locationReq struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type calculateReq struct {
	Distance        float64     `json:"distance" binding:"required"`
	VehicleTypeID   string      `json:"vehicleTypeId" binding:"required"`
	DepartureTime   time.Time   `json:"departureTime" binding:"required"`
	PickupLocation  locationReq `json:"pickupLocation" binding:"required"`
	DropoffLocation locationReq `json:"dropoffLocation" binding:"required"`
	Weather         string      `json:"weather"`
	TripID          string      `json:"tripId"`
}

func (h *PricingHandler) Calculate(c *gin.Context) {
	var req calculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	cmd := fare.CalculateCommand{
		DistanceKm:    req.Distance,
		VehicleTypeID: types.ID(req.VehicleTypeID),
		DepartureTime: req.DepartureTime,
		Pickup:        types.Point{Lat: req.PickupLocation.Latitude, Lng: req.PickupLocation.Longitude},
		Dropoff:       types.Point{Lat: req.DropoffLocation.Latitude, Lng: req.DropoffLocation.Longitude},
		Weather:       req.Weather,
	}
	if req.TripID != "" {
		tripID := types.ID(req.TripID)
		cmd.TripID = &tripID
	}
	result, err := h.fare.Calculate(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, result)
}

func (h *PricingHandler) HistoryByTrip(c *gin.Context) {
	tripID := c.Param("tripID")
	if tripID == "" {
		writeError(c, http.StatusBadRequest, "missing trip id", nil)
		return
	}
	entries, err := h.ledger.FindByTripID(c.Request.Context(), types.ID(tripID))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, entries)
}

func (h *PricingHandler) HistoryByVehicleType(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle type id", nil)
		return
	}
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", 50)
	if !ok {
		return
	}
	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}
	entries, err := h.ledger.FindByVehicleTypeID(c.Request.Context(), types.ID(id), page, pageSize, from, to)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, entries)
}

func (h *PricingHandler) Statistics(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle type id", nil)
		return
	}
	days, ok := intQuery(c, "period_days", 30)
	if !ok {
		return
	}
	stats, err := h.ledger.Statistics(c.Request.Context(), types.ID(id), days)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, stats)
}

func (h *PricingHandler) MultiplierUsage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle type id", nil)
		return
	}
	days, ok := intQuery(c, "period_days", 30)
	if !ok {
		return
	}
	usage, err := h.ledger.MultiplierUsage(c.Request.Context(), types.ID(id), days)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, usage)
}

// intQuery parses an optional integer query parameter. On a malformed value
// it writes a 400 and reports false.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+key+" value", err)
		return 0, false
	}
	return n, true
}

// timeQuery parses an optional RFC3339 query parameter. On a malformed value
// it writes a 400 and reports false.
func timeQuery(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+key+" timestamp", err)
		return time.Time{}, false
	}
	return t, true
}
