package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	"github.com/regsaude/profissionais-api/pkg/auth"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
	"github.com/regsaude/profissionais-api/pkg/security"
)

type Service struct {
	repo    repository.UsuarioRepository
	jwt     auth.JWTService
	hasher  security.PasswordHasher
	auditor *auditoria.Service
}

func NewService(repo repository.UsuarioRepository, jwt auth.JWTService, hasher security.PasswordHasher, auditor *auditoria.Service) *Service {
	return &Service{repo: repo, jwt: jwt, hasher: hasher, auditor: auditor}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	usuario, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("Credenciais inválidas", nil)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(usuario.SenhaHash, req.Senha); err != nil {
		return nil, apperrors.Unauthorized("Credenciais inválidas", nil)
	}

	token, err := s.jwt.GenerateAccessToken(usuario.ID, usuario.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{AccessToken: token, Usuario: usuario}, nil
}

// Register creates an account without requiring an authenticated caller.
// NivelAcesso defaults to view-only; the audit entry is attributed to the
// account itself.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Usuario, error) {
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

	nivel := req.NivelAcesso
	if nivel == 0 {
		nivel = model.NivelVisualizacao
	}

	usuario := &model.Usuario{
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		SenhaHash:    hash,
		NivelAcesso:  nivel,
		CidadeID:     req.CidadeID,
	}

	if err := s.repo.Create(ctx, usuario); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Email já cadastrado", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, usuario.ID, model.AcaoCreate, model.TabelaUsuarios, usuario.ID, nil, usuario)
	return usuario, nil
}

// Me returns the authenticated user's own record.
func (s *Service) Me(ctx context.Context, usuarioID int64) (*model.Usuario, error) {
	usuario, err := s.repo.Get(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Usuário não encontrado", err)
		}
		return nil, apperrors.Internal(err)
	}
	return usuario, nil
}
