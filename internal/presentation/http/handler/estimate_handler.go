package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// EstimateHandler handles estimate HTTP requests
type EstimateHandler struct {
	estimateService *service.EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// List handles listing estimates
func (h *EstimateHandler) List(c *gin.Context) {
	params := parsePagination(c)
	customerID := parseUUIDQuery(c, "customer_id")

	var status *enum.EstimateStatus
	if statusStr := c.Query("status"); statusStr != "" {
		n, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		s := enum.EstimateStatus(n)
		status = &s
	}

	result, err := h.estimateService.ListEstimates(c.Request.Context(), params, status, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Estimates retrieved successfully", result)
}

// Get handles retrieving a single estimate
func (h *EstimateHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate retrieved successfully", estimate)
}

// Create handles creating a draft estimate
func (h *EstimateHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
		VehicleID  *uuid.UUID `json:"vehicle_id"`
		Note       *string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), &service.CreateEstimateInput{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimate created successfully", estimate)
}

// AddItem handles adding a line item to a draft estimate
func (h *EstimateHandler) AddItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	estimate, err := h.estimateService.AddItem(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", estimate)
}

// RemoveItem handles removing a line item from a draft estimate
func (h *EstimateHandler) RemoveItem(c *gin.Context) {
	estimateID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	estimate, err := h.estimateService.RemoveItem(c.Request.Context(), estimateID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed successfully", estimate)
}

// Send handles marking an estimate as sent
func (h *EstimateHandler) Send(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	estimate, err := h.estimateService.Send(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate sent successfully", estimate)
}

// Approve handles approving an estimate and converting it to a job
func (h *EstimateHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req struct {
		VehicleID *uuid.UUID `json:"vehicle_id"`
	}
	// Body is optional; an estimate with a vehicle needs nothing more.
	_ = c.ShouldBindJSON(&req)

	job, err := h.estimateService.Approve(c.Request.Context(), id, req.VehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimate approved and job created", job)
}

// Decline handles declining an estimate
func (h *EstimateHandler) Decline(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	estimate, err := h.estimateService.Decline(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate declined", estimate)
}

// Delete handles deleting an estimate
func (h *EstimateHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
