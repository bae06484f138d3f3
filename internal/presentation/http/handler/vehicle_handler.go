package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// VehicleHandler handles vehicle-related HTTP requests
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// List handles listing vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	params := parsePagination(c)
	customerID := parseUUIDQuery(c, "customer_id")
	search := c.Query("search")

	result, err := h.vehicleService.ListVehicles(c.Request.Context(), params, customerID, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vehicles retrieved successfully", result)
}

// Get handles retrieving a single vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

// Create handles creating a vehicle
func (h *VehicleHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
		Year         int       `json:"year"`
		Make         string    `json:"make" binding:"required"`
		Model        string    `json:"model" binding:"required"`
		VIN          *string   `json:"vin"`
		LicensePlate *string   `json:"license_plate"`
		Mileage      *int      `json:"mileage"`
		Color        *string   `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &service.CreateVehicleInput{
		CustomerID:   req.CustomerID,
		Year:         req.Year,
		Make:         req.Make,
		Model:        req.Model,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
		Mileage:      req.Mileage,
		Color:        req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle created successfully", vehicle)
}

// Update handles updating a vehicle
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req struct {
		Year         *int    `json:"year"`
		Make         *string `json:"make"`
		Model        *string `json:"model"`
		VIN          *string `json:"vin"`
		LicensePlate *string `json:"license_plate"`
		Mileage      *int    `json:"mileage"`
		Color        *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), &service.UpdateVehicleInput{
		ID:           id,
		Year:         req.Year,
		Make:         req.Make,
		Model:        req.Model,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
		Mileage:      req.Mileage,
		Color:        req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle updated successfully", vehicle)
}

// Delete handles deleting a vehicle
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
