package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository/memory"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	"github.com/regsaude/profissionais-api/pkg/auth"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
	"github.com/regsaude/profissionais-api/pkg/security"
)

func newService(t *testing.T) (*Service, *memory.UsuarioRepository) {
	t.Helper()
	repo := memory.NewUsuarioRepository()
	audit := memory.NewAuditoriaRepository()
	svc := NewService(
		repo,
		auth.NewJWTService("segredo-de-teste", time.Hour),
		security.NewBcryptHasher(4),
		auditoria.NewService(audit, repo),
	)
	return svc, repo
}

func registrar(t *testing.T, svc *Service, email, senha string) *model.Usuario {
	t.Helper()
	u, err := svc.Register(context.Background(), &model.RegisterRequest{
		NomeCompleto: "Conta de Teste",
		Email:        email,
		Senha:        senha,
	})
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	registrar(t, svc, "a@x.com", "segredo1")

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "a@x.com", Senha: "segredo1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "a@x.com", resp.Usuario.Email)

	// issued token resolves back to the user
	jwtSvc := auth.NewJWTService("segredo-de-teste", time.Hour)
	claims, err := jwtSvc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Usuario.ID, claims.UsuarioID)
}

func TestLoginSenhaErrada(t *testing.T) {
	svc, _ := newService(t)
	registrar(t, svc, "a@x.com", "segredo1")

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "a@x.com", Senha: "errada99"})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	assert.Equal(t, "Credenciais inválidas", appErr.Message)
}

func TestLoginEmailDesconhecido(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ninguem@x.com", Senha: "segredo1"})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	assert.Equal(t, "Credenciais inválidas", appErr.Message)
}

func TestRegisterEmailDuplicado(t *testing.T) {
	svc, _ := newService(t)
	registrar(t, svc, "a@x.com", "segredo1")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		NomeCompleto: "Outra",
		Email:        "a@x.com",
		Senha:        "segredo2",
	})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestRegisterNivelPadrao(t *testing.T) {
	svc, _ := newService(t)
	u := registrar(t, svc, "a@x.com", "segredo1")
	assert.Equal(t, model.NivelVisualizacao, u.NivelAcesso)
}

func TestMe(t *testing.T) {
	svc, _ := newService(t)
	u := registrar(t, svc, "a@x.com", "segredo1")

	me, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)

	_, err = svc.Me(context.Background(), 999)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
