package usuario

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	usuarioService "github.com/regsaude/profissionais-api/internal/service/usuario"
)

type Handler struct {
	service *usuarioService.Service
}

func NewHandler(service *usuarioService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	usuarios := r.Group("/usuarios")
	{
		usuarios.GET("", h.Listar)
		usuarios.POST("", h.Criar)
		usuarios.PUT("/:id", h.Atualizar)
		usuarios.DELETE("/:id", h.Excluir)
	}
}

func (h *Handler) Listar(c *gin.Context) {
	usuarios, err := h.service.Listar(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, usuarios)
}

func (h *Handler) Criar(c *gin.Context) {
	var req model.CriarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	usuario, err := h.service.Criar(c.Request.Context(), middleware.UsuarioID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

func (h *Handler) Atualizar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	var req model.AtualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	usuario, err := h.service.Atualizar(c.Request.Context(), middleware.UsuarioID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, usuario)
}

func (h *Handler) Excluir(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Excluir(c.Request.Context(), middleware.UsuarioID(c), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário excluído com sucesso"})
}
