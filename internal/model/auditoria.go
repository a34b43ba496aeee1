package model

import (
	"encoding/json"
	"time"
)

// Audit actions
const (
	AcaoCreate = "CREATE"
	AcaoUpdate = "UPDATE"
	AcaoDelete = "DELETE"
	AcaoExport = "EXPORT"
)

// Audited tables
const (
	TabelaCidades       = "cidades"
	TabelaEquipamentos  = "equipamentos"
	TabelaUsuarios      = "usuarios"
	TabelaProfissionais = "profissionais"
)

// Auditoria is an append-only record of a mutation: who did what to which
// row, with before/after snapshots. Rows are never updated or deleted.
type Auditoria struct {
	ID            int64           `json:"id" db:"id"`
	UsuarioID     int64           `json:"usuario_id" db:"usuario_id"`
	Acao          string          `json:"acao" db:"acao"`
	Tabela        string          `json:"tabela" db:"tabela"`
	RegistroID    int64           `json:"registro_id" db:"registro_id"`
	DadosAntigos  json.RawMessage `json:"dados_antigos" db:"dados_antigos"`
	DadosNovos    json.RawMessage `json:"dados_novos" db:"dados_novos"`
	DataHora      time.Time       `json:"data_hora" db:"data_hora"`
	IPOrigem      *string         `json:"ip_origem" db:"ip_origem"`
}

type AuditoriaFiltros struct {
	Tabela     string
	Acao       string
	UsuarioID  *int64
	DataInicio *time.Time
	DataFim    *time.Time
}

// AuditoriaEstatisticas groups audit entries by action, table and acting
// user name.
type AuditoriaEstatisticas struct {
	Acoes    []ContagemAcao    `json:"acoes"`
	Tabelas  []ContagemTabela  `json:"tabelas"`
	Usuarios []ContagemUsuario `json:"usuarios"`
}

type ContagemAcao struct {
	Acao  string `json:"acao" db:"acao"`
	Total int64  `json:"total" db:"total"`
}

type ContagemTabela struct {
	Tabela string `json:"tabela" db:"tabela"`
	Total  int64  `json:"total" db:"total"`
}

type ContagemUsuario struct {
	Usuario string `json:"usuario" db:"usuario"`
	Total   int64  `json:"total" db:"total"`
}
