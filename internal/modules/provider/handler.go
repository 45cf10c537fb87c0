package provider

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/middleware"
	"marketplace/internal/modules/booking"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /provider on an authenticated group. Staff may only
// read bookings; everything else belongs to the provider owner.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	p := rg.Group("/provider")

	p.POST("/onboard", middleware.RequireRole(domain.RoleCustomer), h.Onboard)
	p.GET("/bookings", middleware.RequireRole(domain.RoleProvider, domain.RoleProviderStaff), h.ListBookings)

	owner := p.Group("", middleware.RequireRole(domain.RoleProvider))
	{
		owner.GET("/profile", h.GetProfile)
		owner.PUT("/profile", h.UpdateProfile)

		owner.GET("/services", h.ListServices)
		owner.POST("/services", h.CreateService)
		owner.PUT("/services/:id", h.UpdateService)
		owner.DELETE("/services/:id", h.DeleteService)
		owner.PATCH("/services/:id/status", h.SetServiceStatus)
		owner.POST("/services/:id/addons", h.AddAddon)
		owner.DELETE("/services/:id/addons/:addonId", h.RemoveAddon)

		owner.PATCH("/bookings/:id/status", h.UpdateBookingStatus)

		owner.GET("/staff", h.ListStaff)
		owner.POST("/staff", h.AddStaff)
		owner.DELETE("/staff/:id", h.RemoveStaff)
	}
}

// providerID resolves the acting provider or writes the error response.
func (h *Handler) providerID(c *gin.Context) (int64, bool) {
	id, err := h.service.ProviderIDFor(c.Request.Context(), middleware.MustPrincipal(c))
	if err != nil {
		response.FromError(c, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) Onboard(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var req OnboardRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prov, err := h.service.Onboard(c.Request.Context(), p.UserID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"provider": prov})
}

func (h *Handler) GetProfile(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	prov, err := h.service.Profile(c.Request.Context(), pid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": prov})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !response.BindJSON(c, &req) {
		return
	}
	prov, err := h.service.UpdateProfile(c.Request.Context(), pid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": prov})
}

func (h *Handler) ListServices(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListServices(c.Request.Context(), pid, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) CreateService(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	var req CreateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), pid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), pid, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) DeleteService(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), pid, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) SetServiceStatus(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	svc, err := h.service.SetServiceStatus(c.Request.Context(), pid, id, *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) AddAddon(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req CreateAddonRequest
	if !response.BindJSON(c, &req) {
		return
	}
	a, err := h.service.AddAddon(c.Request.Context(), pid, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"addon": a})
}

func (h *Handler) RemoveAddon(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	addonID, ok := response.ParamID(c, "addonId")
	if !ok {
		return
	}
	if err := h.service.RemoveAddon(c.Request.Context(), pid, id, addonID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListBookings(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	q, ok := booking.BindListQuery(c)
	if !ok {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListBookings(c.Request.Context(), pid, q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req booking.UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	b, err := h.service.UpdateBookingStatus(c.Request.Context(), pid, id, req.Status, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListStaff(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	items, err := h.service.ListStaff(c.Request.Context(), pid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) AddStaff(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	var req CreateStaffRequest
	if !response.BindJSON(c, &req) {
		return
	}
	st, err := h.service.AddStaff(c.Request.Context(), pid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"staff": st})
}

func (h *Handler) RemoveStaff(c *gin.Context) {
	pid, ok := h.providerID(c)
	if !ok {
		return
	}
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemoveStaff(c.Request.Context(), pid, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}
