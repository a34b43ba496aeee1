package model

import "time"

// Access levels, from view-only to global admin.
const (
	NivelVisualizacao = 1
	NivelEditor       = 2
	NivelAdminCidade  = 3
	NivelAdminGlobal  = 4
)

// Usuario is a system account. CidadeID scopes what levels 1-3 can see and
// touch; nil with nivel < 4 effectively scopes to nothing.
type Usuario struct {
	ID           int64     `json:"id" db:"id"`
	NomeCompleto string    `json:"nome_completo" db:"nome_completo"`
	Email        string    `json:"email" db:"email"`
	SenhaHash    string    `json:"-" db:"senha_hash"`
	NivelAcesso  int       `json:"nivel_acesso" db:"nivel_acesso"`
	CidadeID     *int64    `json:"cidade_id" db:"cidade_id"`
	DataCadastro time.Time `json:"data_cadastro" db:"data_cadastro"`
}

type CriarUsuarioRequest struct {
	NomeCompleto string `json:"nome_completo" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Senha        string `json:"senha" binding:"required,min=6"`
	NivelAcesso  int    `json:"nivel_acesso" binding:"omitempty,min=1,max=4"`
	CidadeID     *int64 `json:"cidade_id"`
}

type AtualizarUsuarioRequest struct {
	NomeCompleto *string `json:"nome_completo"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Senha        *string `json:"senha" binding:"omitempty,min=6"`
	NivelAcesso  *int    `json:"nivel_acesso" binding:"omitempty,min=1,max=4"`
	CidadeID     *int64  `json:"cidade_id"`
}
