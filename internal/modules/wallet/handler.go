package wallet

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	w := rg.Group("/wallet")
	{
		w.GET("", h.GetMyWallet)
		w.POST("/topup", h.TopUp)
		w.GET("/transactions", h.ListMyTransactions)
	}
}

func (h *Handler) GetMyWallet(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	sum, err := h.service.Summary(c.Request.Context(), p.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}

func (h *Handler) TopUp(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	var req TopUpRequest
	if !response.BindJSON(c, &req) {
		return
	}
	w, txn, err := h.service.TopUp(c.Request.Context(), p.UserID, req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, TopUpResponse{Wallet: w, Transaction: txn})
}

func (h *Handler) ListMyTransactions(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	params := pagination.FromQuery(c)
	items, total, err := h.service.Transactions(c.Request.Context(), p.UserID, params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, items, pagination.NewMeta(params, total))
}
