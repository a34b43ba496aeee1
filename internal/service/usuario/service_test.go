package usuario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository/memory"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
	"github.com/regsaude/profissionais-api/pkg/security"
)

type fixture struct {
	svc   *Service
	repo  *memory.UsuarioRepository
	audit *memory.AuditoriaRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewUsuarioRepository()
	audit := memory.NewAuditoriaRepository()
	return &fixture{
		svc:   NewService(repo, security.NewBcryptHasher(4), auditoria.NewService(audit, repo)),
		repo:  repo,
		audit: audit,
	}
}

func (f *fixture) novoUsuario(t *testing.T, email string, nivel int, cidadeID *int64) int64 {
	t.Helper()
	u := &model.Usuario{NomeCompleto: "Teste", Email: email, NivelAcesso: nivel, CidadeID: cidadeID}
	require.NoError(t, f.repo.Create(context.Background(), u))
	return u.ID
}

func cidade(id int64) *int64 { return &id }

func TestCriarUsuario(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)

	u, err := f.svc.Criar(context.Background(), admin, &model.CriarUsuarioRequest{
		NomeCompleto: "Nova Conta",
		Email:        "nova@x.com",
		Senha:        "segredo1",
		NivelAcesso:  model.NivelEditor,
		CidadeID:     cidade(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "segredo1", u.SenhaHash)
	assert.NoError(t, security.NewBcryptHasher(4).Compare(u.SenhaHash, "segredo1"))

	ultima := f.audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, model.AcaoCreate, ultima.Acao)
	assert.Equal(t, model.TabelaUsuarios, ultima.Tabela)
	assert.NotContains(t, string(ultima.DadosNovos), "senha")
}

func TestCriarUsuarioNivelPadrao(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)

	u, err := f.svc.Criar(context.Background(), admin, &model.CriarUsuarioRequest{
		NomeCompleto: "Nova Conta",
		Email:        "nova@x.com",
		Senha:        "segredo1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NivelVisualizacao, u.NivelAcesso)
}

func TestCriarUsuarioEmailDuplicado(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)

	_, err := f.svc.Criar(context.Background(), admin, &model.CriarUsuarioRequest{
		NomeCompleto: "Conta",
		Email:        "admin@x.com",
		Senha:        "segredo1",
	})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Email já cadastrado", appErr.Message)
}

func TestAdminCidadeNaoPromoveParaGlobal(t *testing.T) {
	f := newFixture(t)
	adminCidade := f.novoUsuario(t, "admin1@x.com", model.NivelAdminCidade, cidade(1))

	_, err := f.svc.Criar(context.Background(), adminCidade, &model.CriarUsuarioRequest{
		NomeCompleto: "Conta",
		Email:        "conta@x.com",
		Senha:        "segredo1",
		NivelAcesso:  model.NivelAdminGlobal,
		CidadeID:     cidade(1),
	})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestAdminCidadeNaoTocaOutraCidade(t *testing.T) {
	f := newFixture(t)
	adminCidade := f.novoUsuario(t, "admin1@x.com", model.NivelAdminCidade, cidade(1))
	alvo := f.novoUsuario(t, "alvo@x.com", model.NivelVisualizacao, cidade(2))

	nome := "Novo Nome"
	_, err := f.svc.Atualizar(context.Background(), adminCidade, alvo, &model.AtualizarUsuarioRequest{NomeCompleto: &nome})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	err = f.svc.Excluir(context.Background(), adminCidade, alvo)
	require.Error(t, err)
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestExcluirProprioUsuarioNegado(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)

	err := f.svc.Excluir(context.Background(), admin, admin)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestExcluirUsuario(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)
	alvo := f.novoUsuario(t, "alvo@x.com", model.NivelVisualizacao, cidade(1))

	require.NoError(t, f.svc.Excluir(context.Background(), admin, alvo))

	_, err := f.repo.Get(context.Background(), alvo)
	require.Error(t, err)

	ultima := f.audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, model.AcaoDelete, ultima.Acao)
	assert.NotNil(t, ultima.DadosAntigos)
	assert.Nil(t, ultima.DadosNovos)
}

func TestListarEscopo(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)
	adminCidade := f.novoUsuario(t, "admin1@x.com", model.NivelAdminCidade, cidade(1))
	f.novoUsuario(t, "outro@x.com", model.NivelVisualizacao, cidade(2))

	todos, err := f.svc.Listar(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	proprios, err := f.svc.Listar(context.Background(), adminCidade)
	require.NoError(t, err)
	require.Len(t, proprios, 1)
	assert.Equal(t, "admin1@x.com", proprios[0].Email)
}

func TestListarNegadoParaEditor(t *testing.T) {
	f := newFixture(t)
	editor := f.novoUsuario(t, "editor@x.com", model.NivelEditor, cidade(1))

	_, err := f.svc.Listar(context.Background(), editor)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestAtualizarTrocaSenha(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, "admin@x.com", model.NivelAdminGlobal, nil)
	alvo := f.novoUsuario(t, "alvo@x.com", model.NivelVisualizacao, cidade(1))

	senha := "novasenha"
	u, err := f.svc.Atualizar(context.Background(), admin, alvo, &model.AtualizarUsuarioRequest{Senha: &senha})
	require.NoError(t, err)
	assert.NoError(t, security.NewBcryptHasher(4).Compare(u.SenhaHash, "novasenha"))
}
