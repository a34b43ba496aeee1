package model

// ProfissionalRelatorio is a listing row with the city and unit names
// resolved for display.
type ProfissionalRelatorio struct {
	Profissional
	CidadeNome      string `json:"cidade_nome" db:"cidade_nome"`
	EquipamentoNome string `json:"equipamento_nome" db:"equipamento_nome"`
}

type EstatisticasGerais struct {
	TotalProfissionais    int64   `json:"total_profissionais"`
	ProfissionaisAtivos   int64   `json:"profissionais_ativos"`
	ProfissionaisInativos int64   `json:"profissionais_inativos"`
	TaxaAtividade         float64 `json:"taxa_atividade"`
}

type EstatisticaEquipamento struct {
	Equipamento string `json:"equipamento" db:"equipamento"`
	Total       int64  `json:"total" db:"total"`
	Ativos      int64  `json:"ativos" db:"ativos"`
	Inativos    int64  `json:"inativos" db:"inativos"`
}

type EstatisticaCidade struct {
	Cidade   string `json:"cidade" db:"cidade"`
	Total    int64  `json:"total" db:"total"`
	Ativos   int64  `json:"ativos" db:"ativos"`
	Inativos int64  `json:"inativos" db:"inativos"`
}

type EstatisticaProfissao struct {
	Profissao string `json:"profissao" db:"profissao"`
	Total     int64  `json:"total" db:"total"`
}

type EstatisticasProfissionais struct {
	Geral          EstatisticasGerais       `json:"geral"`
	PorEquipamento []EstatisticaEquipamento `json:"por_equipamento"`
	PorCidade      []EstatisticaCidade      `json:"por_cidade"`
	PorProfissao   []EstatisticaProfissao   `json:"por_profissao"`
}
