package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// JobHandler handles repair order HTTP requests
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List handles listing jobs with filters
func (h *JobHandler) List(c *gin.Context) {
	params := &repository.JobFilterParams{
		Pagination: parsePagination(c),
		CustomerID: parseUUIDQuery(c, "customer_id"),
		VehicleID:  parseUUIDQuery(c, "vehicle_id"),
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		n, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status := enum.JobStatus(n)
		params.Status = &status
	}

	from := parseDateQuery(c, "completed_from")
	to := parseDateQuery(c, "completed_to")
	if from != nil && to != nil {
		params.CompletedAt = &repository.DateWindow{From: *from, To: *to}
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Jobs retrieved successfully", result)
}

// Get handles retrieving a single job
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job retrieved successfully", job)
}

// Create handles opening a new job
func (h *JobHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
		VehicleID   uuid.UUID `json:"vehicle_id" binding:"required"`
		Description *string   `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), &service.CreateJobInput{
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Job created successfully", job)
}

// Update handles editing a job's description
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req struct {
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), id, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job updated successfully", job)
}

// UpdateStatus handles moving a job through its lifecycle
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req struct {
		Status *int `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.UpdateJobStatus(c.Request.Context(), id, enum.JobStatus(*req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job status updated successfully", job)
}

// Delete handles deleting a job
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// lineItemRequest is the JSON body for adding or editing a line item
type lineItemRequest struct {
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	Quantity    float64  `json:"quantity" binding:"required"`
	UnitCost    float64  `json:"unit_cost"`
	PartCost    *float64 `json:"part_cost"`
}

func (r *lineItemRequest) toInput() *service.LineItemInput {
	return &service.LineItemInput{
		Type:        enum.LineItemType(r.Type),
		Description: r.Description,
		Category:    r.Category,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
		PartCost:    r.PartCost,
	}
}

// AddItem handles adding a line item to a job
func (h *JobHandler) AddItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.AddItem(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", job)
}

// UpdateItem handles editing a line item
func (h *JobHandler) UpdateItem(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.UpdateItem(c.Request.Context(), jobID, itemID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item updated successfully", job)
}

// RemoveItem handles removing a line item from a job
func (h *JobHandler) RemoveItem(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	job, err := h.jobService.RemoveItem(c.Request.Context(), jobID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed successfully", job)
}

// Recalculate handles repricing a job under current settings
func (h *JobHandler) Recalculate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.Recalculate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Job repriced successfully", job)
}
