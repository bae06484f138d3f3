package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice and payment HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := parsePagination(c)

	var status *enum.InvoiceStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := enum.InvoiceStatus(statusStr)
		status = &s
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles issuing an invoice for a completed job
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req struct {
		JobID uuid.UUID `json:"job_id" binding:"required"`
		DueOn *string   `json:"due_on"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var dueOn *time.Time
	if req.DueOn != nil {
		t, err := time.Parse("2006-01-02", *req.DueOn)
		if err != nil {
			response.BadRequest(c, "Invalid due_on date")
			return
		}
		dueOn = &t
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.JobID, dueOn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice issued successfully", invoice)
}

// Send handles marking an invoice as sent
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", invoice)
}

// Void handles voiding an unpaid invoice
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Void(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice voided successfully", invoice)
}

// RecordPayment handles recording a payment against an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Amount     float64 `json:"amount" binding:"required"`
		Method     string  `json:"method" binding:"required"`
		Reference  *string `json:"reference"`
		ReceivedAt *string `json:"received_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.RecordPaymentInput{
		InvoiceID: id,
		Amount:    req.Amount,
		Method:    enum.PaymentMethod(req.Method),
		Reference: req.Reference,
	}
	if req.ReceivedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ReceivedAt)
		if err != nil {
			response.BadRequest(c, "Invalid received_at timestamp")
			return
		}
		input.ReceivedAt = &t
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", invoice)
}
