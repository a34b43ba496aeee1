package usuario

import (
	"context"
	"database/sql"
	"errors"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/acesso"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
	"github.com/regsaude/profissionais-api/pkg/security"
)

type Service struct {
	repo    repository.UsuarioRepository
	hasher  security.PasswordHasher
	auditor *auditoria.Service
}

func NewService(repo repository.UsuarioRepository, hasher security.PasswordHasher, auditor *auditoria.Service) *Service {
	return &Service{repo: repo, hasher: hasher, auditor: auditor}
}

// Listar returns the accounts the actor can manage: every account for a
// global admin, the actor's own city for a city admin.
func (s *Service) Listar(ctx context.Context, atorID int64) ([]*model.Usuario, error) {
	ator, err := acesso.Ator(ctx, s.repo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarUsuarios(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	usuarios, err := s.repo.List(ctx, acesso.EscopoCidade(ator))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return usuarios, nil
}

func (s *Service) Criar(ctx context.Context, atorID int64, req *model.CriarUsuarioRequest) (*model.Usuario, error) {
	ator, err := acesso.Ator(ctx, s.repo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeGerenciarUsuarios(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	nivel := req.NivelAcesso
	if nivel == 0 {
		nivel = model.NivelVisualizacao
	}
	if !acesso.PodeDefinirNivel(ator, nivel) {
		return nil, apperrors.Forbidden(nil)
	}

	usuario := &model.Usuario{
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		NivelAcesso:  nivel,
		CidadeID:     req.CidadeID,
	}
	if !acesso.PodeGerenciarUsuario(ator, usuario) {
		return nil, apperrors.Forbidden(nil)
	}

	existe, err := s.repo.ExistsEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existe {
		return nil, apperrors.Conflict("Email já cadastrado", nil)
	}

	hash, err := s.hasher.Hash(req.Senha)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	usuario.SenhaHash = hash

	if err := s.repo.Create(ctx, usuario); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email já cadastrado", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoCreate, model.TabelaUsuarios, usuario.ID, nil, usuario)
	return usuario, nil
}

func (s *Service) Atualizar(ctx context.Context, atorID, id int64, patch *model.AtualizarUsuarioRequest) (*model.Usuario, error) {
	ator, err := acesso.Ator(ctx, s.repo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	usuario, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acesso.PodeGerenciarUsuario(ator, usuario) {
		return nil, apperrors.Forbidden(nil)
	}
	antigos := *usuario

	if patch.NivelAcesso != nil {
		if !acesso.PodeDefinirNivel(ator, *patch.NivelAcesso) {
			return nil, apperrors.Forbidden(nil)
		}
		usuario.NivelAcesso = *patch.NivelAcesso
	}
	if patch.Email != nil && *patch.Email != usuario.Email {
		existe, err := s.repo.ExistsEmail(ctx, *patch.Email, id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if existe {
			return nil, apperrors.Conflict("Email já cadastrado", nil)
		}
		usuario.Email = *patch.Email
	}
	if patch.NomeCompleto != nil {
		usuario.NomeCompleto = *patch.NomeCompleto
	}
	if patch.Senha != nil {
		hash, err := s.hasher.Hash(*patch.Senha)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		usuario.SenhaHash = hash
	}
	if patch.CidadeID != nil {
		usuario.CidadeID = patch.CidadeID
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email já cadastrado", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoUpdate, model.TabelaUsuarios, usuario.ID, &antigos, usuario)
	return usuario, nil
}

// Excluir removes the account for good. Accounts are the one resource that
// is hard-deleted; the audit entry keeps the last snapshot.
func (s *Service) Excluir(ctx context.Context, atorID, id int64) error {
	if atorID == id {
		return apperrors.Validation("Não é possível excluir seu próprio usuário", nil)
	}

	ator, err := acesso.Ator(ctx, s.repo, atorID)
	if err != nil {
		return apperrors.Internal(err)
	}

	usuario, err := s.carregar(ctx, id)
	if err != nil {
		return err
	}
	if !acesso.PodeGerenciarUsuario(ator, usuario) {
		return apperrors.Forbidden(nil)
	}
	antigos := *usuario

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoDelete, model.TabelaUsuarios, id, &antigos, nil)
	return nil
}

func (s *Service) carregar(ctx context.Context, id int64) (*model.Usuario, error) {
	usuario, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Usuário não encontrado", err)
		}
		return nil, apperrors.Internal(err)
	}
	return usuario, nil
}
