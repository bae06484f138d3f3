package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// SettingsHandler handles shop settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the shop's pricing configuration
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// feeRuleRequest is the JSON body for one surcharge rule
type feeRuleRequest struct {
	Enabled    bool     `json:"enabled"`
	Method     string   `json:"method"`
	Rate       float64  `json:"rate"`
	Cap        *float64 `json:"cap"`
	Categories []string `json:"categories"`
}

func (r *feeRuleRequest) toConfig() entity.FeeRuleConfig {
	return entity.FeeRuleConfig{
		Enabled:    r.Enabled,
		Method:     enum.FeeMethod(r.Method),
		Rate:       r.Rate,
		Cap:        r.Cap,
		Categories: r.Categories,
	}
}

// Update handles updating the shop's pricing configuration
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		TaxRate       *float64        `json:"tax_rate"`
		ShopSupplies  *feeRuleRequest `json:"shop_supplies"`
		Hazmat        *feeRuleRequest `json:"hazmat"`
		JobCategories *[]string       `json:"job_categories"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateSettingsInput{
		TaxRate:       req.TaxRate,
		JobCategories: req.JobCategories,
	}
	if req.ShopSupplies != nil {
		cfg := req.ShopSupplies.toConfig()
		input.ShopSupplies = &cfg
	}
	if req.Hazmat != nil {
		cfg := req.Hazmat.toConfig()
		input.Hazmat = &cfg
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
