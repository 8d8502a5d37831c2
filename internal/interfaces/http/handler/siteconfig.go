package handler

import (
	"github.com/gin-gonic/gin"
	appsiteconfig "github.com/podplatform/backend/internal/application/siteconfig"
	"github.com/podplatform/backend/internal/domain/siteconfig"
)

// SettingRequest is one entry of a bulk settings update
type SettingRequest struct {
	Key   string `json:"key" binding:"required,max=100"`
	Value string `json:"value"`
	Group string `json:"group" binding:"max=50"`
	Type  string `json:"type" binding:"omitempty,oneof=text textarea boolean secret"`
	Label string `json:"label" binding:"max=200"`
}

// BulkUpdateResponse reports how many settings were written
type BulkUpdateResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

// SiteConfigHandler serves editable site content and the payment settings
type SiteConfigHandler struct {
	BaseHandler
	service *appsiteconfig.SiteConfigService
}

// NewSiteConfigHandler creates a new site config handler
func NewSiteConfigHandler(service *appsiteconfig.SiteConfigService) *SiteConfigHandler {
	return &SiteConfigHandler{service: service}
}

// Public returns the settings the storefront renders. The payment group and
// secrets never leave the admin API.
func (h *SiteConfigHandler) Public(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	public := make([]siteconfig.Setting, 0, len(settings))
	for _, s := range settings {
		if s.Group == siteconfig.PaymentGroup || s.Type == siteconfig.TypeSecret {
			continue
		}
		public = append(public, s)
	}
	h.Success(c, public)
}

// List returns every setting with secrets masked
func (h *SiteConfigHandler) List(c *gin.Context) {
	settings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// BulkUpdate upserts the posted settings in one transaction
func (h *SiteConfigHandler) BulkUpdate(c *gin.Context) {
	var req []SettingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	settings := make([]siteconfig.Setting, 0, len(req))
	for _, r := range req {
		settings = append(settings, siteconfig.Setting{
			Key:   r.Key,
			Value: r.Value,
			Group: r.Group,
			Type:  r.Type,
			Label: r.Label,
		})
	}

	n, err := h.service.BulkUpdate(c.Request.Context(), settings)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, BulkUpdateResponse{Message: "Settings updated", Updated: n})
}

// GetPaymentConfig returns the processor settings with secrets masked
func (h *SiteConfigHandler) GetPaymentConfig(c *gin.Context) {
	cfg, err := h.service.GetPaymentConfig(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// UpdatePaymentConfig stores the processor settings. Masked or empty
// secrets keep their stored value.
func (h *SiteConfigHandler) UpdatePaymentConfig(c *gin.Context) {
	var req siteconfig.PaymentConfig
	if !h.bindJSON(c, &req) {
		return
	}

	cfg, err := h.service.UpdatePaymentConfig(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
