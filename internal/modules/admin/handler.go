package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/modules/booking"
	"marketplace/internal/modules/payment"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /admin behind the admin role gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.AdminOnly())
	{
		admin.GET("/providers", h.ListProviders)
		admin.POST("/providers", h.CreateProvider)
		admin.PUT("/providers/:id", h.UpdateProvider)

		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
		admin.PATCH("/categories/:id/status", h.SetCategoryStatus)

		admin.GET("/bookings", h.ListBookings)
		admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		admin.GET("/payments", h.ListPayments)

		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:id/status", h.SetUserStatus)

		admin.GET("/audit-logs", h.ListAuditLogs)
		admin.GET("/stats", h.GetStats)
	}
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return false
	}
	return true
}

func (h *Handler) ListProviders(c *gin.Context) {
	var q ProviderQuery
	if !bindQuery(c, &q) {
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

func (h *Handler) CreateProvider(c *gin.Context) {
	var req CreateProviderRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prov, err := h.service.CreateProvider(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"provider": prov})
}

func (h *Handler) UpdateProvider(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateProviderRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prov, err := h.service.UpdateProvider(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": prov})
}

func (h *Handler) ListCategories(c *gin.Context) {
	items, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) SetCategoryStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cat, err := h.service.SetCategoryStatus(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) ListBookings(c *gin.Context) {
	q, ok := booking.BindListQuery(c)
	if !ok {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListBookings(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req booking.UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListPayments(c *gin.Context) {
	var q payment.ListQuery
	if !bindQuery(c, &q) {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListPayments(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) ListUsers(c *gin.Context) {
	var q UserQuery
	if !bindQuery(c, &q) {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListUsers(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) SetUserStatus(c *gin.Context) {
	actor := middleware.MustPrincipal(c)
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UserStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	u, err := h.service.SetUserStatus(c.Request.Context(), actor.UserID, id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	var q AuditQuery
	if !bindQuery(c, &q) {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListAuditLogs(c.Request.Context(), q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) GetStats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}
