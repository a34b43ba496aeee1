package equipamento

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	equipamentoService "github.com/regsaude/profissionais-api/internal/service/equipamento"
)

type Handler struct {
	service *equipamentoService.Service
}

func NewHandler(service *equipamentoService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	equipamentos := r.Group("/equipamentos")
	{
		equipamentos.GET("", h.Listar)
		equipamentos.GET("/:id/profissionais", h.ListarProfissionais)
		equipamentos.POST("", h.Criar)
		equipamentos.PUT("/:id", h.Atualizar)
		equipamentos.DELETE("/:id", h.Excluir)
	}
}

func (h *Handler) Listar(c *gin.Context) {
	equipamentos, err := h.service.Listar(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, equipamentos)
}

func (h *Handler) ListarProfissionais(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	equipamento, profissionais, err := h.service.ListarProfissionais(c.Request.Context(), middleware.UsuarioID(c), id, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipamento":   equipamento,
		"profissionais": profissionais,
	})
}

func (h *Handler) Criar(c *gin.Context) {
	var req model.CriarEquipamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	equipamento, err := h.service.Criar(c.Request.Context(), middleware.UsuarioID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, equipamento)
}

func (h *Handler) Atualizar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	var req model.AtualizarEquipamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	equipamento, err := h.service.Atualizar(c.Request.Context(), middleware.UsuarioID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, equipamento)
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

	c.JSON(http.StatusOK, gin.H{"message": "Equipamento excluído com sucesso"})
}
