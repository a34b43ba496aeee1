package model

import "time"

// Cidade scopes users and professionals. Referenced rows are never hard
// deleted; "deletion" flips status to inativo.
type Cidade struct {
	ID           int64     `json:"id" db:"id"`
	Nome         string    `json:"nome" db:"nome"`
	Status       string    `json:"status" db:"status"`
	DataCadastro time.Time `json:"data_cadastro" db:"data_cadastro"`
}

type CriarCidadeRequest struct {
	Nome   string `json:"nome" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=ativo inativo"`
}

type AtualizarCidadeRequest struct {
	Nome   *string `json:"nome"`
	Status *string `json:"status" binding:"omitempty,oneof=ativo inativo"`
}
