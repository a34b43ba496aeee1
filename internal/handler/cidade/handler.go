package cidade

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	cidadeService "github.com/regsaude/profissionais-api/internal/service/cidade"
)

type Handler struct {
	service *cidadeService.Service
}

func NewHandler(service *cidadeService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cidades := r.Group("/cidades")
	{
		cidades.GET("", h.Listar)
		cidades.POST("", h.Criar)
		cidades.PUT("/:id", h.Atualizar)
		cidades.DELETE("/:id", h.Excluir)
	}
}

func (h *Handler) Listar(c *gin.Context) {
	cidades, err := h.service.Listar(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cidades)
}

func (h *Handler) Criar(c *gin.Context) {
	var req model.CriarCidadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cidade, err := h.service.Criar(c.Request.Context(), middleware.UsuarioID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, cidade)
}

func (h *Handler) Atualizar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	var req model.AtualizarCidadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cidade, err := h.service.Atualizar(c.Request.Context(), middleware.UsuarioID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cidade)
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

	c.JSON(http.StatusOK, gin.H{"message": "Cidade excluída com sucesso"})
}
