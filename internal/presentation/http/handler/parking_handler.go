package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// ParkingHandler handles parking lot HTTP requests, including the public
// reservation form.
type ParkingHandler struct {
	parkingService *service.ParkingService
}

// NewParkingHandler creates a new parking handler
func NewParkingHandler(parkingService *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: parkingService}
}

// ListSpots handles listing the lot's spots
func (h *ParkingHandler) ListSpots(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	spots, err := h.parkingService.ListSpots(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Spots retrieved successfully", spots)
}

// CreateSpot handles adding a spot to the lot
func (h *ParkingHandler) CreateSpot(c *gin.Context) {
	var req struct {
		Label       string  `json:"label" binding:"required"`
		Covered     bool    `json:"covered"`
		MonthlyRate float64 `json:"monthly_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	spot, err := h.parkingService.CreateSpot(c.Request.Context(), &service.CreateSpotInput{
		Label:       req.Label,
		Covered:     req.Covered,
		MonthlyRate: req.MonthlyRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Spot created successfully", spot)
}

// UpdateSpot handles updating a spot
func (h *ParkingHandler) UpdateSpot(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid spot ID")
		return
	}

	var req struct {
		Label       *string  `json:"label"`
		Covered     *bool    `json:"covered"`
		MonthlyRate *float64 `json:"monthly_rate"`
		Active      *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	spot, err := h.parkingService.UpdateSpot(c.Request.Context(), &service.UpdateSpotInput{
		ID:          id,
		Label:       req.Label,
		Covered:     req.Covered,
		MonthlyRate: req.MonthlyRate,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Spot updated successfully", spot)
}

// DeleteSpot handles removing a spot from the lot
func (h *ParkingHandler) DeleteSpot(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid spot ID")
		return
	}

	if err := h.parkingService.DeleteSpot(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Reserve handles a reservation request. This endpoint is also mounted on
// the public intake surface, so its request shape stays plain contact info.
func (h *ParkingHandler) Reserve(c *gin.Context) {
	var req struct {
		SpotID    uuid.UUID `json:"spot_id" binding:"required"`
		FirstName string    `json:"first_name" binding:"required"`
		LastName  string    `json:"last_name" binding:"required"`
		Email     *string   `json:"email"`
		Phone     *string   `json:"phone"`
		StartsOn  string    `json:"starts_on" binding:"required"`
		EndsOn    *string   `json:"ends_on"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	startsOn, err := time.Parse("2006-01-02", req.StartsOn)
	if err != nil {
		response.BadRequest(c, "Invalid starts_on date")
		return
	}

	var endsOn *time.Time
	if req.EndsOn != nil {
		t, err := time.Parse("2006-01-02", *req.EndsOn)
		if err != nil {
			response.BadRequest(c, "Invalid ends_on date")
			return
		}
		endsOn = &t
	}

	reservation, err := h.parkingService.Reserve(c.Request.Context(), &service.ReserveInput{
		SpotID:    req.SpotID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created successfully", reservation)
}

// ListReservations handles listing reservations
func (h *ParkingHandler) ListReservations(c *gin.Context) {
	params := parsePagination(c)
	spotID := parseUUIDQuery(c, "spot_id")

	var status *enum.ReservationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := enum.ReservationStatus(statusStr)
		status = &s
	}

	result, err := h.parkingService.ListReservations(c.Request.Context(), params, status, spotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reservations retrieved successfully", result)
}

// GetReservation handles retrieving a single reservation
func (h *ParkingHandler) GetReservation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.parkingService.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation retrieved successfully", reservation)
}

// UpdateReservationStatus handles moving a reservation through its lifecycle
func (h *ParkingHandler) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.parkingService.UpdateReservationStatus(c.Request.Context(), id, enum.ReservationStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation updated successfully", reservation)
}
