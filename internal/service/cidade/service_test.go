package cidade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository/memory"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

type fixture struct {
	svc      *Service
	repo     *memory.CidadeRepository
	usuarios *memory.UsuarioRepository
	audit    *memory.AuditoriaRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewCidadeRepository()
	usuarios := memory.NewUsuarioRepository()
	audit := memory.NewAuditoriaRepository()
	return &fixture{
		svc:      NewService(repo, usuarios, auditoria.NewService(audit, usuarios)),
		repo:     repo,
		usuarios: usuarios,
		audit:    audit,
	}
}

func (f *fixture) novoUsuario(t *testing.T, nivel int) int64 {
	t.Helper()
	u := &model.Usuario{NomeCompleto: "Teste", Email: "t@t.com", NivelAcesso: nivel}
	require.NoError(t, f.usuarios.Create(context.Background(), u))
	return u.ID
}

func TestCriarCidade(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal)

	c, err := f.svc.Criar(context.Background(), admin, &model.CriarCidadeRequest{Nome: "Campinas"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAtivo, c.Status)

	ultima := f.audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, model.AcaoCreate, ultima.Acao)
	assert.Equal(t, model.TabelaCidades, ultima.Tabela)
}

func TestCriarCidadeNegadoParaEditor(t *testing.T) {
	f := newFixture(t)
	editor := f.novoUsuario(t, model.NivelEditor)

	_, err := f.svc.Criar(context.Background(), editor, &model.CriarCidadeRequest{Nome: "Campinas"})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestCriarCidadeNomeDuplicado(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal)
	ctx := context.Background()

	_, err := f.svc.Criar(ctx, admin, &model.CriarCidadeRequest{Nome: "Campinas"})
	require.NoError(t, err)

	_, err = f.svc.Criar(ctx, admin, &model.CriarCidadeRequest{Nome: "Campinas"})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Cidade já cadastrada", appErr.Message)
}

func TestExcluirCidadeMantemRegistro(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal)
	ctx := context.Background()

	c, err := f.svc.Criar(ctx, admin, &model.CriarCidadeRequest{Nome: "Campinas"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Excluir(ctx, admin, c.ID))

	guardada, err := f.repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInativo, guardada.Status)

	// inactive cities drop out of the default listing
	ativas, err := f.svc.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, ativas)

	ultima := f.audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, model.AcaoDelete, ultima.Acao)
	assert.NotNil(t, ultima.DadosAntigos)
	assert.NotNil(t, ultima.DadosNovos)
}

func TestAtualizarCidadeNaoEncontrada(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal)

	nome := "Outra"
	_, err := f.svc.Atualizar(context.Background(), admin, 42, &model.AtualizarCidadeRequest{Nome: &nome})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, "Cidade não encontrada", appErr.Message)
}
