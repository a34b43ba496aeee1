package auditoria

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	auditoriaService "github.com/regsaude/profissionais-api/internal/service/auditoria"
)

type Handler struct {
	service *auditoriaService.Service
}

func NewHandler(service *auditoriaService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auditoria := r.Group("/auditoria")
	{
		auditoria.GET("", h.Listar)
		auditoria.GET("/estatisticas", h.Estatisticas)
	}
}

func (h *Handler) Listar(c *gin.Context) {
	usuarioID, ok := handler.QueryInt64(c, "usuario_id")
	if !ok {
		return
	}

	filtros := &model.AuditoriaFiltros{
		Tabela:    c.Query("tabela"),
		Acao:      c.Query("acao"),
		UsuarioID: usuarioID,
	}

	if raw := c.Query("data_inicio"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro data_inicio inválido"})
			return
		}
		filtros.DataInicio = &t
	}
	if raw := c.Query("data_fim"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro data_fim inválido"})
			return
		}
		// inclusive end of day
		fim := t.Add(24*time.Hour - time.Nanosecond)
		filtros.DataFim = &fim
	}

	entradas, err := h.service.Listar(c.Request.Context(), middleware.UsuarioID(c), filtros)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entradas)
}

func (h *Handler) Estatisticas(c *gin.Context) {
	stats, err := h.service.Estatisticas(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
