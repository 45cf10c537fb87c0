package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalog. Every route needs a resolved
// tenant but no session.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tenant", h.GetTenant)
	r.GET("/services", h.GetServices)
	r.GET("/services/:id", h.GetServiceByID)
	r.GET("/categories", h.GetCategories)
	r.GET("/providers", h.GetProviders)
}

func (h *Handler) GetTenant(c *gin.Context) {
	t, ok := middleware.TenantFrom(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_TENANT", "Tenant could not be resolved")
		return
	}
	info, err := h.service.Tenant(c.Request.Context(), t.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) GetServices(c *gin.Context) {
	var q ServiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListServices(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) GetServiceByID(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) GetCategories(c *gin.Context) {
	items, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetProviders(c *gin.Context) {
	var q ProviderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListProviders(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}
