package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	authService "github.com/regsaude/profissionais-api/internal/service/auth"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts login and register outside the token check.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	usuario, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

func (h *Handler) Me(c *gin.Context) {
	usuario, err := h.service.Me(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, usuario)
}
