package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/middleware"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/services/:id/reviews", h.ListByService)
	}
	if protected != nil {
		protected.POST("/reviews", middleware.RequireRole(domain.RoleCustomer), h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var req CreateReviewRequest
	if !response.BindJSON(c, &req) {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), p.UserID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) ListByService(c *gin.Context) {
	serviceID, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	params := pagination.FromQuery(c)
	items, total, err := h.svc.ListByService(c.Request.Context(), serviceID, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}
