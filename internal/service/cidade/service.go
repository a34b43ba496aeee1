package cidade

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
	repo        repository.CidadeRepository
	usuarioRepo repository.UsuarioRepository
	auditor     *auditoria.Service
}

func NewService(repo repository.CidadeRepository, usuarioRepo repository.UsuarioRepository, auditor *auditoria.Service) *Service {
	return &Service{repo: repo, usuarioRepo: usuarioRepo, auditor: auditor}
}

// Listar returns active cities; reads are not level-restricted.
func (s *Service) Listar(ctx context.Context) ([]*model.Cidade, error) {
	cidades, err := s.repo.List(ctx, model.StatusAtivo)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cidades, nil
}

func (s *Service) Criar(ctx context.Context, atorID int64, req *model.CriarCidadeRequest) (*model.Cidade, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	existe, err := s.repo.ExistsNome(ctx, req.Nome, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existe {
		return nil, apperrors.Conflict("Cidade já cadastrada", nil)
	}

	cidade := &model.Cidade{
		Nome:   req.Nome,
		Status: req.Status,
	}
	if cidade.Status == "" {
		cidade.Status = model.StatusAtivo
	}

	if err := s.repo.Create(ctx, cidade); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoCreate, model.TabelaCidades, cidade.ID, nil, cidade)
	return cidade, nil
}

func (s *Service) Atualizar(ctx context.Context, atorID, id int64, patch *model.AtualizarCidadeRequest) (*model.Cidade, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	cidade, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	antigos := *cidade

	if patch.Nome != nil && *patch.Nome != cidade.Nome {
		existe, err := s.repo.ExistsNome(ctx, *patch.Nome, id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if existe {
			return nil, apperrors.Conflict("Cidade já cadastrada", nil)
		}
		cidade.Nome = *patch.Nome
	}
	if patch.Status != nil {
		cidade.Status = *patch.Status
	}

	if err := s.repo.Update(ctx, cidade); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoUpdate, model.TabelaCidades, cidade.ID, &antigos, cidade)
	return cidade, nil
}

// Excluir soft-deletes: the row stays, status flips to inativo.
func (s *Service) Excluir(ctx context.Context, atorID, id int64) error {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarCadastros(ator) {
		return apperrors.Forbidden(nil)
	}

	cidade, err := s.carregar(ctx, id)
	if err != nil {
		return err
	}
	antigos := *cidade

	cidade.Status = model.StatusInativo
	if err := s.repo.Update(ctx, cidade); err != nil {
		return apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoDelete, model.TabelaCidades, cidade.ID, &antigos, cidade)
	return nil
}

func (s *Service) carregar(ctx context.Context, id int64) (*model.Cidade, error) {
	cidade, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Cidade não encontrada", err)
		}
		return nil, apperrors.Internal(err)
	}
	return cidade, nil
}
