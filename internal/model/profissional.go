package model

import "time"

// Profissional is the primary managed record. Lifecycle is soft: created
// ativo, inactivated with a reason and timestamp, freely reactivated.
type Profissional struct {
	ID                  int64      `json:"id" db:"id"`
	EquipamentoID       int64      `json:"equipamento_id" db:"equipamento_id"`
	NomeCompleto        string     `json:"nome_completo" db:"nome_completo"`
	DataNascimento      Data       `json:"data_nascimento" db:"data_nascimento"`
	CPF                 string     `json:"cpf" db:"cpf"`
	RG                  string     `json:"rg" db:"rg"`
	DataExpedicaoRG     Data       `json:"data_expedicao_rg" db:"data_expedicao_rg"`
	Escolaridade        string     `json:"escolaridade" db:"escolaridade"`
	Profissao           string     `json:"profissao" db:"profissao"`
	Cargo               string     `json:"cargo" db:"cargo"`
	VinculoInstitucional string    `json:"vinculo_institucional" db:"vinculo_institucional"`
	Telefone            string     `json:"telefone" db:"telefone"`
	Email               string     `json:"email" db:"email"`
	DataInicioTrabalho  Data       `json:"data_inicio_trabalho" db:"data_inicio_trabalho"`
	EnderecoResidencial string     `json:"endereco_residencial" db:"endereco_residencial"`
	CidadeID            int64      `json:"cidade_id" db:"cidade_id"`
	DataCadastro        time.Time  `json:"data_cadastro" db:"data_cadastro"`
	Ativo               bool       `json:"ativo" db:"ativo"`
	MotivoInativacao    *string    `json:"motivo_inativacao" db:"motivo_inativacao"`
	DataInativacao      *time.Time `json:"data_inativacao" db:"data_inativacao"`
}

type CriarProfissionalRequest struct {
	EquipamentoID       int64  `json:"equipamento_id" binding:"required"`
	NomeCompleto        string `json:"nome_completo" binding:"required"`
	DataNascimento      Data   `json:"data_nascimento" binding:"required"`
	CPF                 string `json:"cpf" binding:"required"`
	RG                  string `json:"rg" binding:"required"`
	DataExpedicaoRG     Data   `json:"data_expedicao_rg" binding:"required"`
	Escolaridade        string `json:"escolaridade" binding:"required"`
	Profissao           string `json:"profissao" binding:"required"`
	Cargo               string `json:"cargo" binding:"required"`
	VinculoInstitucional string `json:"vinculo_institucional" binding:"required"`
	Telefone            string `json:"telefone" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	DataInicioTrabalho  Data   `json:"data_inicio_trabalho" binding:"required"`
	EnderecoResidencial string `json:"endereco_residencial" binding:"required"`
	CidadeID            int64  `json:"cidade_id" binding:"required"`
}

// AtualizarProfissionalRequest carries a partial update: only non-nil
// fields are applied.
type AtualizarProfissionalRequest struct {
	EquipamentoID       *int64  `json:"equipamento_id"`
	NomeCompleto        *string `json:"nome_completo"`
	DataNascimento      *Data   `json:"data_nascimento"`
	CPF                 *string `json:"cpf"`
	RG                  *string `json:"rg"`
	DataExpedicaoRG     *Data   `json:"data_expedicao_rg"`
	Escolaridade        *string `json:"escolaridade"`
	Profissao           *string `json:"profissao"`
	Cargo               *string `json:"cargo"`
	VinculoInstitucional *string `json:"vinculo_institucional"`
	Telefone            *string `json:"telefone"`
	Email               *string `json:"email" binding:"omitempty,email"`
	DataInicioTrabalho  *Data   `json:"data_inicio_trabalho"`
	EnderecoResidencial *string `json:"endereco_residencial"`
	CidadeID            *int64  `json:"cidade_id"`
}

type InativarProfissionalRequest struct {
	MotivoInativacao string `json:"motivo_inativacao"`
}

// ProfissionalFiltros are the caller-supplied list filters, combined with
// AND. EscopoCidade is set by the service from the acting user, never from
// the request.
type ProfissionalFiltros struct {
	Status        string
	CidadeID      *int64
	EquipamentoID *int64
	Profissao     string
	Cargo         string
	EscopoCidade  *int64
}
