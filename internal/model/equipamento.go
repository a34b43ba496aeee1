package model

import "time"

// Equipamento is the organizational unit a professional is assigned to.
type Equipamento struct {
	ID           int64     `json:"id" db:"id"`
	Nome         string    `json:"nome" db:"nome"`
	Descricao    *string   `json:"descricao" db:"descricao"`
	Status       string    `json:"status" db:"status"`
	DataCadastro time.Time `json:"data_cadastro" db:"data_cadastro"`
}

type CriarEquipamentoRequest struct {
	Nome      string  `json:"nome" binding:"required"`
	Descricao *string `json:"descricao"`
	Status    string  `json:"status" binding:"omitempty,oneof=ativo inativo"`
}

type AtualizarEquipamentoRequest struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
	Status    *string `json:"status" binding:"omitempty,oneof=ativo inativo"`
}
