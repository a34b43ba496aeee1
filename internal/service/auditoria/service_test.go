package auditoria

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository/memory"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

func novoUsuario(t *testing.T, repo *memory.UsuarioRepository, nivel int) int64 {
	t.Helper()
	u := &model.Usuario{NomeCompleto: "Teste", Email: "t@t.com", NivelAcesso: nivel}
	require.NoError(t, repo.Create(context.Background(), u))
	return u.ID
}

func TestRegistrarGravaEntrada(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	usuarios := memory.NewUsuarioRepository()
	svc := NewService(audit, usuarios)

	svc.Registrar(context.Background(), 7, model.AcaoCreate, model.TabelaCidades, 3,
		nil, &model.Cidade{ID: 3, Nome: "Campinas"})

	ultima := audit.Ultima()
	require.NotNil(t, ultima)
	assert.Equal(t, int64(7), ultima.UsuarioID)
	assert.Equal(t, int64(3), ultima.RegistroID)
	assert.Nil(t, ultima.DadosAntigos)
	assert.Contains(t, string(ultima.DadosNovos), "Campinas")
	assert.False(t, ultima.DataHora.IsZero())
}

func TestRegistrarComIPDeContexto(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	svc := NewService(audit, memory.NewUsuarioRepository())

	ctx := ComIPOrigem(context.Background(), "10.0.0.9")
	svc.Registrar(ctx, 1, model.AcaoUpdate, model.TabelaUsuarios, 1, nil, nil)

	ultima := audit.Ultima()
	require.NotNil(t, ultima)
	require.NotNil(t, ultima.IPOrigem)
	assert.Equal(t, "10.0.0.9", *ultima.IPOrigem)
}

// A failed audit insert must never surface to the caller.
func TestRegistrarEngoleFalha(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	audit.Falhar = errors.New("db down")
	svc := NewService(audit, memory.NewUsuarioRepository())

	assert.NotPanics(t, func() {
		svc.Registrar(context.Background(), 1, model.AcaoDelete, model.TabelaCidades, 1, nil, nil)
	})
	assert.Empty(t, audit.Items)
}

func TestListarExigeAdminCidade(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	usuarios := memory.NewUsuarioRepository()
	svc := NewService(audit, usuarios)
	ctx := context.Background()

	editor := novoUsuario(t, usuarios, model.NivelEditor)
	_, err := svc.Listar(ctx, editor, nil)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	admin := novoUsuario(t, usuarios, model.NivelAdminCidade)
	svc.Registrar(ctx, admin, model.AcaoCreate, model.TabelaCidades, 1, nil, nil)

	entradas, err := svc.Listar(ctx, admin, nil)
	require.NoError(t, err)
	assert.Len(t, entradas, 1)
}

func TestListarComFiltros(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	usuarios := memory.NewUsuarioRepository()
	svc := NewService(audit, usuarios)
	ctx := context.Background()

	admin := novoUsuario(t, usuarios, model.NivelAdminGlobal)
	svc.Registrar(ctx, admin, model.AcaoCreate, model.TabelaCidades, 1, nil, nil)
	svc.Registrar(ctx, admin, model.AcaoDelete, model.TabelaUsuarios, 2, nil, nil)

	entradas, err := svc.Listar(ctx, admin, &model.AuditoriaFiltros{Tabela: model.TabelaUsuarios})
	require.NoError(t, err)
	require.Len(t, entradas, 1)
	assert.Equal(t, model.AcaoDelete, entradas[0].Acao)
}

func TestEstatisticas(t *testing.T) {
	audit := memory.NewAuditoriaRepository()
	usuarios := memory.NewUsuarioRepository()
	svc := NewService(audit, usuarios)
	ctx := context.Background()

	admin := novoUsuario(t, usuarios, model.NivelAdminGlobal)
	svc.Registrar(ctx, admin, model.AcaoCreate, model.TabelaCidades, 1, nil, nil)
	svc.Registrar(ctx, admin, model.AcaoCreate, model.TabelaUsuarios, 2, nil, nil)

	stats, err := svc.Estatisticas(ctx, admin)
	require.NoError(t, err)
	require.Len(t, stats.Acoes, 1)
	assert.Equal(t, int64(2), stats.Acoes[0].Total)
	assert.Len(t, stats.Tabelas, 2)
}
