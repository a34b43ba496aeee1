// Package relatorio renders exports of the professional registry: a PDF
// roster, a spreadsheet, and aggregate statistics. Every generated file is
// recorded in the audit trail as an EXPORT.
package relatorio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/acesso"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

type Service struct {
	profissionalRepo repository.ProfissionalRepository
	usuarioRepo      repository.UsuarioRepository
	auditor          *auditoria.Service
}

func NewService(profissionalRepo repository.ProfissionalRepository, usuarioRepo repository.UsuarioRepository, auditor *auditoria.Service) *Service {
	return &Service{profissionalRepo: profissionalRepo, usuarioRepo: usuarioRepo, auditor: auditor}
}

// exportLog is the payload recorded for an EXPORT audit entry; exports have
// no single target row, so RegistroID stays zero.
type exportLog struct {
	Tipo    string                      `json:"tipo"`
	Filtros *model.ProfissionalFiltros  `json:"filtros"`
	Linhas  int                         `json:"linhas"`
}

// GerarPDF renders the professional roster as a PDF, narrowed to the
// caller's filters and city scope.
func (s *Service) GerarPDF(ctx context.Context, atorID int64, filtros *model.ProfissionalFiltros) ([]byte, error) {
	linhas, err := s.carregarLinhas(ctx, atorID, filtros)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Relatório de Profissionais"), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Relatório de Profissionais"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Gerado em %s", time.Now().Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cabecalho := []string{"Nome", "CPF", "Profissão", "Cargo", "Cidade", "Equipamento", "Situação"}
	larguras := []float64{60, 30, 40, 40, 35, 45, 25}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, titulo := range cabecalho {
		pdf.CellFormat(larguras[i], 8, tr(titulo), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, linha := range linhas {
		situacao := "Ativo"
		if !linha.Ativo {
			situacao = "Inativo"
		}
		celulas := []string{
			linha.NomeCompleto,
			linha.CPF,
			linha.Profissao,
			linha.Cargo,
			linha.CidadeNome,
			linha.EquipamentoNome,
			situacao,
		}
		for i, texto := range celulas {
			pdf.CellFormat(larguras[i], 7, tr(texto), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoExport, model.TabelaProfissionais, 0, nil,
		&exportLog{Tipo: "pdf", Filtros: filtros, Linhas: len(linhas)})
	return buf.Bytes(), nil
}

// GerarExcel renders the roster as an xlsx workbook with one sheet.
func (s *Service) GerarExcel(ctx context.Context, atorID int64, filtros *model.ProfissionalFiltros) ([]byte, error) {
	linhas, err := s.carregarLinhas(ctx, atorID, filtros)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const aba = "Profissionais"
	f.SetSheetName(f.GetSheetName(0), aba)

	cabecalho := []string{
		"Nome Completo", "CPF", "RG", "Data Nascimento", "Escolaridade",
		"Profissão", "Cargo", "Vínculo Institucional", "Telefone", "Email",
		"Início do Trabalho", "Endereço", "Cidade", "Equipamento", "Situação",
		"Motivo Inativação",
	}
	for i, titulo := range cabecalho {
		celula, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(aba, celula, titulo)
	}

	for i, linha := range linhas {
		situacao := "Ativo"
		if !linha.Ativo {
			situacao = "Inativo"
		}
		motivo := ""
		if linha.MotivoInativacao != nil {
			motivo = *linha.MotivoInativacao
		}
		valores := []interface{}{
			linha.NomeCompleto, linha.CPF, linha.RG,
			linha.DataNascimento.String(), linha.Escolaridade,
			linha.Profissao, linha.Cargo, linha.VinculoInstitucional,
			linha.Telefone, linha.Email,
			linha.DataInicioTrabalho.String(), linha.EnderecoResidencial,
			linha.CidadeNome, linha.EquipamentoNome, situacao, motivo,
		}
		for j, valor := range valores {
			celula, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(aba, celula, valor)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoExport, model.TabelaProfissionais, 0, nil,
		&exportLog{Tipo: "excel", Filtros: filtros, Linhas: len(linhas)})
	return buf.Bytes(), nil
}

// Estatisticas aggregates the registry within the caller's city scope.
// Per-city breakdown is only computed for global admins; everyone else
// already sees a single city.
func (s *Service) Estatisticas(ctx context.Context, atorID int64) (*model.EstatisticasProfissionais, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerarRelatorios(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	escopo := acesso.EscopoCidade(ator)
	stats, err := s.profissionalRepo.Estatisticas(ctx, escopo, escopo == nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}

func (s *Service) carregarLinhas(ctx context.Context, atorID int64, filtros *model.ProfissionalFiltros) ([]*model.ProfissionalRelatorio, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerarRelatorios(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	if filtros == nil {
		filtros = &model.ProfissionalFiltros{}
	}
	filtros.EscopoCidade = acesso.EscopoCidade(ator)

	linhas, err := s.profissionalRepo.ListComNomes(ctx, filtros)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return linhas, nil
}
