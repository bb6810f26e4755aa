// README: Pricing event admin handlers.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fareflow/internal/modules/event"
	"fareflow/internal/types"
)

type EventHandler struct {
	events *event.Service
	log    *slog.Logger
}

func NewEventHandler(svc *event.Service, log *slog.Logger) *EventHandler {
	return &EventHandler{events: svc, log: log}
}

type eventResp struct {
	ID           types.ID   `json:"id"`
	Name         string     `json:"event_name"`
	Type         event.Type `json:"event_type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Multiplier   float64    `json:"pricing_multiplier"`
	VehicleTypes []string   `json:"affected_vehicle_types"`
	Areas        []string   `json:"affected_areas"`
	Description  string     `json:"description,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toEventResp(e *event.Event) eventResp {
	return eventResp{
		ID:           e.ID,
		Name:         e.Name,
		Type:         e.Type,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Multiplier:   e.Multiplier,
		VehicleTypes: e.VehicleTypes,
		Areas:        e.Areas,
		Description:  e.Description,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type createEventReq struct {
	Name         string    `json:"event_name" binding:"required"`
	Type         string    `json:"event_type" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	Multiplier   float64   `json:"pricing_multiplier" binding:"required,gt=0"`
	VehicleTypes []string  `json:"affected_vehicle_types"`
	Areas        []string  `json:"affected_areas"`
	Description  string    `json:"description"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	e, err := h.events.Create(c.Request.Context(), event.CreateCommand{
		Name:         req.Name,
		Type:         event.Type(req.Type),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Multiplier:   req.Multiplier,
		VehicleTypes: req.VehicleTypes,
		Areas:        req.Areas,
		Description:  req.Description,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusCreated, toEventResp(e))
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.events.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toEventResp(e))
}

func (h *EventHandler) List(c *gin.Context) {
	es, err := h.events.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]eventResp, 0, len(es))
	for i := range es {
		out = append(out, toEventResp(&es[i]))
	}
	writeData(c, http.StatusOK, out)
}

// ListActive serves the admin dashboard view pinned to now.
func (h *EventHandler) ListActive(c *gin.Context) {
	es, err := h.events.FindActiveForDashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]eventResp, 0, len(es))
	for i := range es {
		out = append(out, toEventResp(&es[i]))
	}
	writeData(c, http.StatusOK, out)
}

type updateEventReq struct {
	Name         *string    `json:"event_name"`
	Type         *string    `json:"event_type"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Multiplier   *float64   `json:"pricing_multiplier"`
	VehicleTypes []string   `json:"affected_vehicle_types"`
	Areas        []string   `json:"affected_areas"`
	Description  *string    `json:"description"`
	IsActive     *bool      `json:"is_active"`
}

func (h *EventHandler) Update(c *gin.Context) {
	var req updateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	var p event.Patch
	p.Name = req.Name
	if req.Type != nil {
		t := event.Type(*req.Type)
		p.Type = &t
	}
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	p.Multiplier = req.Multiplier
	p.VehicleTypes = req.VehicleTypes
	p.Areas = req.Areas
	p.Description = req.Description
	p.IsActive = req.IsActive
	e, err := h.events.Update(c.Request.Context(), types.ID(c.Param("id")), p)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toEventResp(e))
}

// Delete is a hard delete; events are the one catalog entity removed for real.
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"deleted": true})
}
