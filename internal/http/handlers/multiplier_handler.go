// README: Pricing multiplier admin handlers.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fareflow/internal/modules/multiplier"
	"fareflow/internal/types"
)

type MultiplierHandler struct {
	multipliers *multiplier.Service
	log         *slog.Logger
}

func NewMultiplierHandler(svc *multiplier.Service, log *slog.Logger) *MultiplierHandler {
	return &MultiplierHandler{multipliers: svc, log: log}
}

type multiplierResp struct {
	ID            types.ID        `json:"id"`
	VehicleTypeID types.ID        `json:"vehicle_type_id"`
	Type          multiplier.Type `json:"multiplier_type"`
	Value         float64         `json:"multiplier_value"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toMultiplierResp(m *multiplier.Multiplier) multiplierResp {
	return multiplierResp{
		ID:            m.ID,
		VehicleTypeID: m.VehicleTypeID,
		Type:          m.Type,
		Value:         m.Value,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type createMultiplierReq struct {
	VehicleTypeID string  `json:"vehicle_type_id" binding:"required"`
	Type          string  `json:"multiplier_type" binding:"required"`
	Value         float64 `json:"multiplier_value" binding:"required,gt=0"`
}

func (h *MultiplierHandler) Create(c *gin.Context) {
	var req createMultiplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	m, err := h.multipliers.Create(c.Request.Context(), multiplier.CreateCommand{
		VehicleTypeID: types.ID(req.VehicleTypeID),
		Type:          multiplier.Type(req.Type),
		Value:         req.Value,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusCreated, toMultiplierResp(m))
}

func (h *MultiplierHandler) Get(c *gin.Context) {
	m, err := h.multipliers.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toMultiplierResp(m))
}

func (h *MultiplierHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	ms, err := h.multipliers.List(
		c.Request.Context(),
		types.ID(c.Query("vehicle_type_id")),
		multiplier.Type(c.Query("type")),
		activeOnly,
	)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]multiplierResp, 0, len(ms))
	for i := range ms {
		out = append(out, toMultiplierResp(&ms[i]))
	}
	writeData(c, http.StatusOK, out)
}

type updateMultiplierReq struct {
	Type     *string  `json:"multiplier_type"`
	Value    *float64 `json:"multiplier_value"`
	IsActive *bool    `json:"is_active"`
}

func (h *MultiplierHandler) Update(c *gin.Context) {
	var req updateMultiplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	var p multiplier.Patch
	if req.Type != nil {
		t := multiplier.Type(*req.Type)
		p.Type = &t
	}
	p.Value = req.Value
	p.IsActive = req.IsActive
	m, err := h.multipliers.Update(c.Request.Context(), types.ID(c.Param("id")), p)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toMultiplierResp(m))
}

// Delete deactivates; multiplier rows are never physically removed.
func (h *MultiplierHandler) Delete(c *gin.Context) {
	if err := h.multipliers.Deactivate(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"deactivated": true})
}
