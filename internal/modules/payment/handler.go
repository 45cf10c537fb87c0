package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
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

// RegisterRoutes mounts /payments. Customers see their own payments; admins
// listing here see the whole tenant.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", middleware.RequireRole(domain.RoleCustomer), h.CreatePayment)
	rg.GET("/payments", h.ListPayments)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var req CreatePaymentRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Pay(c.Request.Context(), p.UserID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) ListPayments(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	params := pagination.FromQuery(c)

	var (
		items []domain.Payment
		total int64
		err   error
	)
	if p.HasRole(domain.RoleAdmin, domain.RoleSuperAdmin) {
		items, total, err = h.service.ListAll(c.Request.Context(), q, params)
	} else {
		items, total, err = h.service.ListForCustomer(c.Request.Context(), p.UserID, q, params)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}
