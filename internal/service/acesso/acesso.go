// Package acesso is the access control evaluator: stateless functions
// mapping (acting user, target) to allow/deny. A nil actor always denies,
// covering tokens whose user no longer exists.
package acesso

import (
	"context"
	"database/sql"
	"errors"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

// semCidade scopes city-bound users without a city to an id no row carries.
const semCidade = int64(-1)

// Ator loads the acting user; (nil, nil) when the id no longer exists, so
// callers fall through to deny.
func Ator(ctx context.Context, repo repository.UsuarioRepository, id int64) (*model.Usuario, error) {
	usuario, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return usuario, nil
}

// PodeGerenciarCadastros gates City/Equipment writes.
func PodeGerenciarCadastros(u *model.Usuario) bool {
	return u != nil && u.NivelAcesso >= model.NivelAdminCidade
}

// PodeVerProfissional gates single-record reads: global admins always,
// everyone else only within their own city.
func PodeVerProfissional(u *model.Usuario, p *model.Profissional) bool {
	if u == nil || p == nil {
		return false
	}
	if u.NivelAcesso >= model.NivelAdminGlobal {
		return true
	}
	return u.CidadeID != nil && *u.CidadeID == p.CidadeID
}

// PodeEditarProfissional gates professional writes. p is nil on create:
// editors and city admins are provisionally allowed without the target
// city being cross-checked against their own.
func PodeEditarProfissional(u *model.Usuario, p *model.Profissional) bool {
	if u == nil {
		return false
	}
	switch {
	case u.NivelAcesso >= model.NivelAdminGlobal:
		return true
	case u.NivelAcesso >= model.NivelEditor:
		if p == nil {
			return true
		}
		return u.CidadeID != nil && *u.CidadeID == p.CidadeID
	default:
		return false
	}
}

// PodeGerenciarUsuarios gates the user-management surface as a whole.
func PodeGerenciarUsuarios(u *model.Usuario) bool {
	return u != nil && u.NivelAcesso >= model.NivelAdminCidade
}

// PodeGerenciarUsuario gates touching one specific account: city admins
// only reach accounts in their own city.
func PodeGerenciarUsuario(ator, alvo *model.Usuario) bool {
	if !PodeGerenciarUsuarios(ator) || alvo == nil {
		return false
	}
	if ator.NivelAcesso >= model.NivelAdminGlobal {
		return true
	}
	return mesmaCidade(ator.CidadeID, alvo.CidadeID)
}

// PodeDefinirNivel rejects city admins granting global-admin access.
func PodeDefinirNivel(ator *model.Usuario, nivel int) bool {
	if ator == nil {
		return false
	}
	return ator.NivelAcesso >= model.NivelAdminGlobal || nivel < model.NivelAdminGlobal
}

// PodeVerAuditoria gates audit listing and statistics.
func PodeVerAuditoria(u *model.Usuario) bool {
	return u != nil && u.NivelAcesso >= model.NivelAdminCidade
}

// PodeGerarRelatorios gates report generation.
func PodeGerarRelatorios(u *model.Usuario) bool {
	return u != nil && u.NivelAcesso >= model.NivelEditor
}

// EscopoCidade returns the implicit city filter for listings and reports:
// nil means unrestricted. A city-bound user without a city sees nothing
// city-scoped.
func EscopoCidade(u *model.Usuario) *int64 {
	if u == nil {
		escopo := semCidade
		return &escopo
	}
	if u.NivelAcesso >= model.NivelAdminGlobal {
		return nil
	}
	if u.CidadeID != nil {
		escopo := *u.CidadeID
		return &escopo
	}
	escopo := semCidade
	return &escopo
}

func mesmaCidade(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
