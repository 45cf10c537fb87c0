package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
	cookie  middleware.CookieOptions
}

func NewHandler(service *Service, cookie middleware.CookieOptions) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// RegisterPublicRoutes mounts register and login behind limit.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, limit gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/register", limit, h.Register)
	g.POST("/login", limit, h.Login)
	g.POST("/logout", h.Logout)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !response.BindJSON(c, &req) {
		return
	}
	sess, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.writeSession(c, http.StatusCreated, sess)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !response.BindJSON(c, &req) {
		return
	}
	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.writeSession(c, http.StatusOK, sess)
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.cookie)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

func (h *Handler) Me(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	u, err := h.service.Me(c.Request.Context(), p.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(u)})
}

func (h *Handler) writeSession(c *gin.Context, status int, sess *Session) {
	middleware.SetAuthCookie(c, h.cookie, sess.Token, sess.ExpiresAt.Sub(h.service.now()))
	response.Success(c, status, SessionResponse{
		User:      toPublic(sess.User),
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}
