package equipamento

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository/memory"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

type fixture struct {
	svc           *Service
	repo          *memory.EquipamentoRepository
	profissionais *memory.ProfissionalRepository
	usuarios      *memory.UsuarioRepository
	audit         *memory.AuditoriaRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewEquipamentoRepository()
	profissionais := memory.NewProfissionalRepository(nil, repo)
	usuarios := memory.NewUsuarioRepository()
	audit := memory.NewAuditoriaRepository()
	return &fixture{
		svc:           NewService(repo, profissionais, usuarios, auditoria.NewService(audit, usuarios)),
		repo:          repo,
		profissionais: profissionais,
		usuarios:      usuarios,
		audit:         audit,
	}
}

func (f *fixture) novoUsuario(t *testing.T, nivel int, cidadeID *int64) int64 {
	t.Helper()
	u := &model.Usuario{NomeCompleto: "Teste", Email: "t@t.com", NivelAcesso: nivel, CidadeID: cidadeID}
	require.NoError(t, f.usuarios.Create(context.Background(), u))
	return u.ID
}

func (f *fixture) novoProfissional(t *testing.T, equipamentoID, cidadeID int64) *model.Profissional {
	t.Helper()
	p := &model.Profissional{
		EquipamentoID:  equipamentoID,
		NomeCompleto:   "Profissional",
		DataNascimento: model.NovaData(1990, time.May, 1),
		CidadeID:       cidadeID,
	}
	require.NoError(t, f.profissionais.Create(context.Background(), p))
	return p
}

func cidade(id int64) *int64 { return &id }

func TestCriarEquipamento(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal, nil)

	e, err := f.svc.Criar(context.Background(), admin, &model.CriarEquipamentoRequest{Nome: "CRAS Centro"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAtivo, e.Status)

	ultima := f.audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, model.AcaoCreate, ultima.Acao)
	assert.Equal(t, model.TabelaEquipamentos, ultima.Tabela)
}

func TestCriarEquipamentoNegadoParaEditor(t *testing.T) {
	f := newFixture(t)
	editor := f.novoUsuario(t, model.NivelEditor, cidade(1))

	_, err := f.svc.Criar(context.Background(), editor, &model.CriarEquipamentoRequest{Nome: "CRAS Centro"})
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestExcluirEquipamentoMantemRegistro(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal, nil)
	ctx := context.Background()

	e, err := f.svc.Criar(ctx, admin, &model.CriarEquipamentoRequest{Nome: "CRAS Centro"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Excluir(ctx, admin, e.ID))

	guardado, err := f.repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInativo, guardado.Status)

	ativos, err := f.svc.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, ativos)
}

func TestListarProfissionaisDoEquipamento(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal, nil)
	editorCidade1 := f.novoUsuario(t, model.NivelEditor, cidade(1))
	ctx := context.Background()

	e, err := f.svc.Criar(ctx, admin, &model.CriarEquipamentoRequest{Nome: "CRAS Centro"})
	require.NoError(t, err)

	f.novoProfissional(t, e.ID, 1)
	f.novoProfissional(t, e.ID, 2)

	equipamento, profissionais, err := f.svc.ListarProfissionais(ctx, admin, e.ID, "")
	require.NoError(t, err)
	assert.Equal(t, e.ID, equipamento.ID)
	assert.Len(t, profissionais, 2)

	// city scope narrows the listing
	_, restritos, err := f.svc.ListarProfissionais(ctx, editorCidade1, e.ID, "")
	require.NoError(t, err)
	require.Len(t, restritos, 1)
	assert.Equal(t, int64(1), restritos[0].CidadeID)
}

func TestListarProfissionaisPorStatus(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal, nil)
	ctx := context.Background()

	e, err := f.svc.Criar(ctx, admin, &model.CriarEquipamentoRequest{Nome: "CRAS Centro"})
	require.NoError(t, err)

	f.novoProfissional(t, e.ID, 1)
	inativo := f.novoProfissional(t, e.ID, 1)
	inativo.Ativo = false
	require.NoError(t, f.profissionais.Update(ctx, inativo))

	// default lists only active
	_, ativos, err := f.svc.ListarProfissionais(ctx, admin, e.ID, "")
	require.NoError(t, err)
	require.Len(t, ativos, 1)
	assert.True(t, ativos[0].Ativo)

	_, inativos, err := f.svc.ListarProfissionais(ctx, admin, e.ID, model.StatusInativo)
	require.NoError(t, err)
	require.Len(t, inativos, 1)
	assert.False(t, inativos[0].Ativo)

	_, todos, err := f.svc.ListarProfissionais(ctx, admin, e.ID, model.StatusTodos)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestListarProfissionaisEquipamentoInexistente(t *testing.T) {
	f := newFixture(t)
	admin := f.novoUsuario(t, model.NivelAdminGlobal, nil)

	_, _, err := f.svc.ListarProfissionais(context.Background(), admin, 99, "")
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
