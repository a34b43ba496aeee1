package equipamento

import (
	"context"
	"database/sql"
	"errors"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/acesso"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

type Service struct {
	repo             repository.EquipamentoRepository
	profissionalRepo repository.ProfissionalRepository
	usuarioRepo      repository.UsuarioRepository
	auditor          *auditoria.Service
}

func NewService(repo repository.EquipamentoRepository, profissionalRepo repository.ProfissionalRepository, usuarioRepo repository.UsuarioRepository, auditor *auditoria.Service) *Service {
	return &Service{repo: repo, profissionalRepo: profissionalRepo, usuarioRepo: usuarioRepo, auditor: auditor}
}

func (s *Service) Listar(ctx context.Context) ([]*model.Equipamento, error) {
	equipamentos, err := s.repo.List(ctx, model.StatusAtivo)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return equipamentos, nil
}

// ListarProfissionais returns the equipment together with the professionals
// assigned to it, narrowed to the caller's city scope. An empty status
// defaults to active; "inativo" selects inactive; anything else disables
// the filter.
func (s *Service) ListarProfissionais(ctx context.Context, atorID, id int64, status string) (*model.Equipamento, []*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	equipamento, err := s.carregar(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	filtros := &model.ProfissionalFiltros{
		Status:        status,
		EquipamentoID: &id,
		EscopoCidade:  acesso.EscopoCidade(ator),
	}
	profissionais, err := s.profissionalRepo.List(ctx, filtros)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	return equipamento, profissionais, nil
}

func (s *Service) Criar(ctx context.Context, atorID int64, req *model.CriarEquipamentoRequest) (*model.Equipamento, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	equipamento := &model.Equipamento{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Status:    req.Status,
	}
	if equipamento.Status == "" {
		equipamento.Status = model.StatusAtivo
	}

	if err := s.repo.Create(ctx, equipamento); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoCreate, model.TabelaEquipamentos, equipamento.ID, nil, equipamento)
	return equipamento, nil
}

func (s *Service) Atualizar(ctx context.Context, atorID, id int64, patch *model.AtualizarEquipamentoRequest) (*model.Equipamento, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	equipamento, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	antigos := *equipamento

	if patch.Nome != nil {
		equipamento.Nome = *patch.Nome
	}
	if patch.Descricao != nil {
		equipamento.Descricao = patch.Descricao
	}
	if patch.Status != nil {
		equipamento.Status = *patch.Status
	}

	if err := s.repo.Update(ctx, equipamento); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoUpdate, model.TabelaEquipamentos, equipamento.ID, &antigos, equipamento)
	return equipamento, nil
}

func (s *Service) Excluir(ctx context.Context, atorID, id int64) error {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return apperrors.Forbidden(nil)
	}

	equipamento, err := s.carregar(ctx, id)
	if err != nil {
		return err
	}
	antigos := *equipamento

	equipamento.Status = model.StatusInativo
	if err := s.repo.Update(ctx, equipamento); err != nil {
		return apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoDelete, model.TabelaEquipamentos, equipamento.ID, &antigos, equipamento)
	return nil
}

func (s *Service) carregar(ctx context.Context, id int64) (*model.Equipamento, error) {
	equipamento, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Equipamento não encontrado", err)
		}
		return nil, apperrors.Internal(err)
	}
	return equipamento, nil
}
