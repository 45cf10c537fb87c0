package booking

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

// RegisterRoutes mounts the customer booking endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	b := rg.Group("/bookings")
	{
		b.POST("", h.CreateBooking)
		b.GET("", h.ListMyBookings)
		b.GET("/:id", h.GetMyBooking)
		b.POST("/:id/cancel", h.CancelMyBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var req CreateBookingRequest
	if !response.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), p.UserID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	q, ok := BindListQuery(c)
	if !ok {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.service.ListForCustomer(c.Request.Context(), p.UserID, q, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}

func (h *Handler) GetMyBooking(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.GetForCustomer(c.Request.Context(), p.UserID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelMyBooking(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if c.Request.ContentLength > 0 && !response.BindJSON(c, &req) {
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), p.UserID, id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// BindListQuery parses booking list filters; malformed dates are a 400.
func BindListQuery(c *gin.Context) (ListQuery, bool) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return q, false
	}
	return q, true
}
