// README: Vehicle type admin handlers.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fareflow/internal/modules/vehicletype"
	"fareflow/internal/types"
)

type VehicleTypeHandler struct {
	vehicles *vehicletype.Service
	log      *slog.Logger
}

func NewVehicleTypeHandler(svc *vehicletype.Service, log *slog.Logger) *VehicleTypeHandler {
	return &VehicleTypeHandler{vehicles: svc, log: log}
}

type vehicleTypeResp struct {
	ID           types.ID  `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PerKmCharges float64   `json:"per_km_charges"`
	MinimumFare  float64   `json:"minimum_fare"`
	MaximumFare  *float64  `json:"maximum_fare,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toVehicleTypeResp(vt *vehicletype.VehicleType) vehicleTypeResp {
	return vehicleTypeResp{
		ID:           vt.ID,
		Name:         vt.Name,
		Description:  vt.Description,
		PerKmCharges: vt.PerKmCharges,
		MinimumFare:  vt.MinimumFare,
		MaximumFare:  vt.MaximumFare,
		IsActive:     vt.IsActive,
		CreatedAt:    vt.CreatedAt,
		UpdatedAt:    vt.UpdatedAt,
	}
}

type createVehicleTypeReq struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	PerKmCharges float64  `json:"per_km_charges" binding:"min=0"`
	MinimumFare  float64  `json:"minimum_fare" binding:"min=0"`
	MaximumFare  *float64 `json:"maximum_fare"`
}

func (h *VehicleTypeHandler) Create(c *gin.Context) {
	var req createVehicleTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	vt, err := h.vehicles.Create(c.Request.Context(), vehicletype.CreateCommand{
		Name:         req.Name,
		Description:  req.Description,
		PerKmCharges: req.PerKmCharges,
		MinimumFare:  req.MinimumFare,
		MaximumFare:  req.MaximumFare,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusCreated, toVehicleTypeResp(vt))
}

func (h *VehicleTypeHandler) Get(c *gin.Context) {
	vt, err := h.vehicles.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toVehicleTypeResp(vt))
}

func (h *VehicleTypeHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	vts, err := h.vehicles.List(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]vehicleTypeResp, 0, len(vts))
	for i := range vts {
		out = append(out, toVehicleTypeResp(&vts[i]))
	}
	writeData(c, http.StatusOK, out)
}

type updateVehicleTypeReq struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	PerKmCharges *float64 `json:"per_km_charges"`
	MinimumFare  *float64 `json:"minimum_fare"`
	MaximumFare  *float64 `json:"maximum_fare"`
	ClearMaximum bool     `json:"clear_maximum"`
	IsActive     *bool    `json:"is_active"`
}

func (h *VehicleTypeHandler) Update(c *gin.Context) {
	var req updateVehicleTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	vt, err := h.vehicles.Update(c.Request.Context(), types.ID(c.Param("id")), vehicletype.Patch{
		Name:         req.Name,
		Description:  req.Description,
		PerKmCharges: req.PerKmCharges,
		MinimumFare:  req.MinimumFare,
		MaximumFare:  req.MaximumFare,
		ClearMaximum: req.ClearMaximum,
		IsActive:     req.IsActive,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, toVehicleTypeResp(vt))
}

// Delete deactivates; vehicle types are never physically removed.
func (h *VehicleTypeHandler) Delete(c *gin.Context) {
	if err := h.vehicles.Deactivate(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	writeData(c, http.StatusOK, gin.H{"deactivated": true})
}
