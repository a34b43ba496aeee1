package profissional

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	profissionalService "github.com/regsaude/profissionais-api/internal/service/profissional"
)

type Handler struct {
	service *profissionalService.Service
}

func NewHandler(service *profissionalService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profissionais := r.Group("/profissionais")
	{
		profissionais.GET("", h.Listar)
		profissionais.GET("/:id", h.Buscar)
		profissionais.POST("", h.Criar)
		profissionais.PUT("/:id", h.Atualizar)
		profissionais.DELETE("/:id", h.Inativar)
		profissionais.PUT("/:id/reativar", h.Reativar)
	}
}

// filtrosFromQuery reads the list filters. The city scope is applied later
// by the service from the acting user.
func filtrosFromQuery(c *gin.Context) (*model.ProfissionalFiltros, bool) {
	cidadeID, ok := handler.QueryInt64(c, "cidade_id")
	if !ok {
		return nil, false
	}
	equipamentoID, ok := handler.QueryInt64(c, "equipamento_id")
	if !ok {
		return nil, false
	}

	return &model.ProfissionalFiltros{
		Status:        c.Query("status"),
		CidadeID:      cidadeID,
		EquipamentoID: equipamentoID,
		Profissao:     c.Query("profissao"),
		Cargo:         c.Query("cargo"),
	}, true
}

func (h *Handler) Listar(c *gin.Context) {
	filtros, ok := filtrosFromQuery(c)
	if !ok {
		return
	}

	profissionais, err := h.service.Listar(c.Request.Context(), middleware.UsuarioID(c), filtros)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profissionais)
}

func (h *Handler) Buscar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	profissional, err := h.service.Buscar(c.Request.Context(), middleware.UsuarioID(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profissional)
}

func (h *Handler) Criar(c *gin.Context) {
	var req model.CriarProfissionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	profissional, err := h.service.Criar(c.Request.Context(), middleware.UsuarioID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, profissional)
}

func (h *Handler) Atualizar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	var req model.AtualizarProfissionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	profissional, err := h.service.Atualizar(c.Request.Context(), middleware.UsuarioID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profissional)
}

// Inativar answers DELETE but only flags the record inactive.
func (h *Handler) Inativar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	var req model.InativarProfissionalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.BindError(c, err)
			return
		}
	}

	profissional, err := h.service.Inativar(c.Request.Context(), middleware.UsuarioID(c), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Profissional inativado com sucesso",
		"profissional": profissional,
	})
}

func (h *Handler) Reativar(c *gin.Context) {
	id, ok := handler.ParamID(c)
	if !ok {
		return
	}

	profissional, err := h.service.Reativar(c.Request.Context(), middleware.UsuarioID(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Profissional reativado com sucesso",
		"profissional": profissional,
	})
}
