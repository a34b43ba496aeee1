package acesso

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/regsaude/profissionais-api/internal/model"
)

func usuario(nivel int, cidadeID *int64) *model.Usuario {
	return &model.Usuario{ID: 1, NivelAcesso: nivel, CidadeID: cidadeID}
}

func cidade(id int64) *int64 { return &id }

func TestPodeGerenciarCadastros(t *testing.T) {
	assert.False(t, PodeGerenciarCadastros(nil))
	assert.False(t, PodeGerenciarCadastros(usuario(model.NivelVisualizacao, cidade(1))))
	assert.False(t, PodeGerenciarCadastros(usuario(model.NivelEditor, cidade(1))))
	assert.True(t, PodeGerenciarCadastros(usuario(model.NivelAdminCidade, cidade(1))))
	assert.True(t, PodeGerenciarCadastros(usuario(model.NivelAdminGlobal, nil)))
}

func TestPodeVerProfissional(t *testing.T) {
	p := &model.Profissional{CidadeID: 1}

	assert.False(t, PodeVerProfissional(nil, p))
	assert.True(t, PodeVerProfissional(usuario(model.NivelAdminGlobal, nil), p))
	assert.True(t, PodeVerProfissional(usuario(model.NivelVisualizacao, cidade(1)), p))
	assert.False(t, PodeVerProfissional(usuario(model.NivelVisualizacao, cidade(2)), p))
	assert.False(t, PodeVerProfissional(usuario(model.NivelAdminCidade, nil), p))
}

func TestPodeEditarProfissional(t *testing.T) {
	p := &model.Profissional{CidadeID: 1}

	assert.False(t, PodeEditarProfissional(nil, p))
	assert.False(t, PodeEditarProfissional(usuario(model.NivelVisualizacao, cidade(1)), p))
	assert.True(t, PodeEditarProfissional(usuario(model.NivelEditor, cidade(1)), p))
	assert.False(t, PodeEditarProfissional(usuario(model.NivelEditor, cidade(2)), p))
	assert.True(t, PodeEditarProfissional(usuario(model.NivelAdminCidade, cidade(1)), p))
	assert.True(t, PodeEditarProfissional(usuario(model.NivelAdminGlobal, nil), p))

	// nil target means create
	assert.True(t, PodeEditarProfissional(usuario(model.NivelEditor, cidade(2)), nil))
	assert.False(t, PodeEditarProfissional(usuario(model.NivelVisualizacao, cidade(2)), nil))
}

func TestPodeGerenciarUsuario(t *testing.T) {
	adminGlobal := usuario(model.NivelAdminGlobal, nil)
	adminCidade := usuario(model.NivelAdminCidade, cidade(1))

	assert.True(t, PodeGerenciarUsuario(adminGlobal, usuario(model.NivelVisualizacao, cidade(5))))
	assert.True(t, PodeGerenciarUsuario(adminCidade, usuario(model.NivelVisualizacao, cidade(1))))
	assert.False(t, PodeGerenciarUsuario(adminCidade, usuario(model.NivelVisualizacao, cidade(2))))
	assert.False(t, PodeGerenciarUsuario(adminCidade, usuario(model.NivelVisualizacao, nil)))
	assert.False(t, PodeGerenciarUsuario(usuario(model.NivelEditor, cidade(1)), usuario(model.NivelVisualizacao, cidade(1))))
	assert.False(t, PodeGerenciarUsuario(nil, usuario(model.NivelVisualizacao, cidade(1))))
}

func TestPodeDefinirNivel(t *testing.T) {
	adminGlobal := usuario(model.NivelAdminGlobal, nil)
	adminCidade := usuario(model.NivelAdminCidade, cidade(1))

	assert.True(t, PodeDefinirNivel(adminGlobal, model.NivelAdminGlobal))
	assert.True(t, PodeDefinirNivel(adminCidade, model.NivelAdminCidade))
	assert.False(t, PodeDefinirNivel(adminCidade, model.NivelAdminGlobal))
	assert.False(t, PodeDefinirNivel(nil, model.NivelVisualizacao))
}

func TestEscopoCidade(t *testing.T) {
	assert.Nil(t, EscopoCidade(usuario(model.NivelAdminGlobal, nil)))
	assert.Nil(t, EscopoCidade(usuario(model.NivelAdminGlobal, cidade(3))))

	escopo := EscopoCidade(usuario(model.NivelEditor, cidade(3)))
	if assert.NotNil(t, escopo) {
		assert.Equal(t, int64(3), *escopo)
	}

	// city-bound user without a city sees nothing
	escopo = EscopoCidade(usuario(model.NivelAdminCidade, nil))
	if assert.NotNil(t, escopo) {
		assert.Equal(t, int64(-1), *escopo)
	}

	escopo = EscopoCidade(nil)
	assert.NotNil(t, escopo)
}
