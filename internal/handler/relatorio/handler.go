package relatorio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/handler"
	"github.com/regsaude/profissionais-api/internal/middleware"
	"github.com/regsaude/profissionais-api/internal/model"
	relatorioService "github.com/regsaude/profissionais-api/internal/service/relatorio"
)

type Handler struct {
	service *relatorioService.Service
}

func NewHandler(service *relatorioService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	relatorios := r.Group("/relatorios")
	{
		relatorios.GET("/profissionais/pdf", h.ProfissionaisPDF)
		relatorios.GET("/profissionais/excel", h.ProfissionaisExcel)
		relatorios.GET("/estatisticas", h.Estatisticas)
	}
}

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

func (h *Handler) ProfissionaisPDF(c *gin.Context) {
	filtros, ok := filtrosFromQuery(c)
	if !ok {
		return
	}

	conteudo, err := h.service.GerarPDF(c.Request.Context(), middleware.UsuarioID(c), filtros)
	if err != nil {
		c.Error(err)
		return
	}

	nome := fmt.Sprintf("profissionais_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+nome+`"`)
	c.Data(http.StatusOK, "application/pdf", conteudo)
}

func (h *Handler) ProfissionaisExcel(c *gin.Context) {
	filtros, ok := filtrosFromQuery(c)
	if !ok {
		return
	}

	conteudo, err := h.service.GerarExcel(c.Request.Context(), middleware.UsuarioID(c), filtros)
	if err != nil {
		c.Error(err)
		return
	}

	nome := fmt.Sprintf("profissionais_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+nome+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", conteudo)
}

func (h *Handler) Estatisticas(c *gin.Context) {
	stats, err := h.service.Estatisticas(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
