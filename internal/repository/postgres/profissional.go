package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

type profissionalRepository struct {
	BaseRepository
}

func NewProfissionalRepository(base BaseRepository) repository.ProfissionalRepository {
	return &profissionalRepository{base}
}

func (r *profissionalRepository) Create(ctx context.Context, p *model.Profissional) error {
	query := `
		INSERT INTO profissionais (
			equipamento_id, nome_completo, data_nascimento, cpf, rg,
			data_expedicao_rg, escolaridade, profissao, cargo,
			vinculo_institucional, telefone, email, data_inicio_trabalho,
			endereco_residencial, cidade_id, data_cadastro, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	p.DataCadastro = time.Now()
	p.Ativo = true

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			p.EquipamentoID,
			p.NomeCompleto,
			p.DataNascimento,
			p.CPF,
			p.RG,
			p.DataExpedicaoRG,
			p.Escolaridade,
			p.Profissao,
			p.Cargo,
			p.VinculoInstitucional,
			p.Telefone,
			p.Email,
			p.DataInicioTrabalho,
			p.EnderecoResidencial,
			p.CidadeID,
			p.DataCadastro,
			p.Ativo,
		).Scan(&p.ID)
	})
}

func (r *profissionalRepository) Get(ctx context.Context, id int64) (*model.Profissional, error) {
	query := `SELECT * FROM profissionais WHERE id = $1`

	var p model.Profissional
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, fmt.Errorf("failed to get profissional: %w", err)
	}

	return &p, nil
}

// filtroWhere builds the conjunctive WHERE clause shared by List and
// ListComNomes. The scope filter comes first, then caller filters.
func filtroWhere(filtros *model.ProfissionalFiltros, prefix string) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filtros.EscopoCidade != nil {
		args = append(args, *filtros.EscopoCidade)
		where += fmt.Sprintf(" AND %scidade_id = $%d", prefix, len(args))
	}

	switch filtros.Status {
	case model.StatusAtivo, "":
		where += fmt.Sprintf(" AND %sativo = TRUE", prefix)
	case model.StatusInativo:
		where += fmt.Sprintf(" AND %sativo = FALSE", prefix)
	}

	if filtros.CidadeID != nil {
		args = append(args, *filtros.CidadeID)
		where += fmt.Sprintf(" AND %scidade_id = $%d", prefix, len(args))
	}

	if filtros.EquipamentoID != nil {
		args = append(args, *filtros.EquipamentoID)
		where += fmt.Sprintf(" AND %sequipamento_id = $%d", prefix, len(args))
	}

	if filtros.Profissao != "" {
		args = append(args, "%"+filtros.Profissao+"%")
		where += fmt.Sprintf(" AND %sprofissao ILIKE $%d", prefix, len(args))
	}

	if filtros.Cargo != "" {
		args = append(args, "%"+filtros.Cargo+"%")
		where += fmt.Sprintf(" AND %scargo ILIKE $%d", prefix, len(args))
	}

	return where, args
}

func (r *profissionalRepository) List(ctx context.Context, filtros *model.ProfissionalFiltros) ([]*model.Profissional, error) {
	where, args := filtroWhere(filtros, "")
	query := `SELECT * FROM profissionais` + where + " ORDER BY nome_completo"

	profissionais := []*model.Profissional{}
	if err := r.db.SelectContext(ctx, &profissionais, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profissionais: %w", err)
	}

	return profissionais, nil
}

func (r *profissionalRepository) ListComNomes(ctx context.Context, filtros *model.ProfissionalFiltros) ([]*model.ProfissionalRelatorio, error) {
	where, args := filtroWhere(filtros, "p.")
	query := `
		SELECT p.*,
			COALESCE(c.nome, 'N/A') AS cidade_nome,
			COALESCE(e.nome, 'N/A') AS equipamento_nome
		FROM profissionais p
		LEFT JOIN cidades c ON c.id = p.cidade_id
		LEFT JOIN equipamentos e ON e.id = p.equipamento_id` +
		where + " ORDER BY p.nome_completo"

	linhas := []*model.ProfissionalRelatorio{}
	if err := r.db.SelectContext(ctx, &linhas, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profissionais with names: %w", err)
	}

	return linhas, nil
}

func (r *profissionalRepository) Update(ctx context.Context, p *model.Profissional) error {
	query := `
		UPDATE profissionais SET
			equipamento_id = $1,
			nome_completo = $2,
			data_nascimento = $3,
			cpf = $4,
			rg = $5,
			data_expedicao_rg = $6,
			escolaridade = $7,
			profissao = $8,
			cargo = $9,
			vinculo_institucional = $10,
			telefone = $11,
			email = $12,
			data_inicio_trabalho = $13,
			endereco_residencial = $14,
			cidade_id = $15,
			ativo = $16,
			motivo_inativacao = $17,
			data_inativacao = $18
		WHERE id = $19
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			p.EquipamentoID,
			p.NomeCompleto,
			p.DataNascimento,
			p.CPF,
			p.RG,
			p.DataExpedicaoRG,
			p.Escolaridade,
			p.Profissao,
			p.Cargo,
			p.VinculoInstitucional,
			p.Telefone,
			p.Email,
			p.DataInicioTrabalho,
			p.EnderecoResidencial,
			p.CidadeID,
			p.Ativo,
			p.MotivoInativacao,
			p.DataInativacao,
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update profissional: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("profissional not found")
		}

		return nil
	})
}

func (r *profissionalRepository) existsBy(ctx context.Context, campo, valor string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM profissionais WHERE %s = $1 AND id <> $2)`, campo)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, valor, excludeID); err != nil {
		return false, fmt.Errorf("failed to check profissional %s: %w", campo, err)
	}

	return exists, nil
}

func (r *profissionalRepository) ExistsCPF(ctx context.Context, cpf string, excludeID int64) (bool, error) {
	return r.existsBy(ctx, "cpf", cpf, excludeID)
}

func (r *profissionalRepository) ExistsRG(ctx context.Context, rg string, excludeID int64) (bool, error) {
	return r.existsBy(ctx, "rg", rg, excludeID)
}

func (r *profissionalRepository) ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.existsBy(ctx, "email", email, excludeID)
}

func (r *profissionalRepository) Estatisticas(ctx context.Context, escopoCidade *int64, porCidade bool) (*model.EstatisticasProfissionais, error) {
	where := ""
	args := []interface{}{}
	if escopoCidade != nil {
		where = " WHERE p.cidade_id = $1"
		args = append(args, *escopoCidade)
	}

	stats := &model.EstatisticasProfissionais{
		PorEquipamento: []model.EstatisticaEquipamento{},
		PorCidade:      []model.EstatisticaCidade{},
		PorProfissao:   []model.EstatisticaProfissao{},
	}

	geralQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE p.ativo) AS ativos,
			COUNT(*) FILTER (WHERE NOT p.ativo) AS inativos
		FROM profissionais p` + where

	var geral struct {
		Total    int64 `db:"total"`
		Ativos   int64 `db:"ativos"`
		Inativos int64 `db:"inativos"`
	}
	if err := r.db.GetContext(ctx, &geral, geralQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to get general stats: %w", err)
	}
	stats.Geral = model.EstatisticasGerais{
		TotalProfissionais:    geral.Total,
		ProfissionaisAtivos:   geral.Ativos,
		ProfissionaisInativos: geral.Inativos,
	}
	if geral.Total > 0 {
		stats.Geral.TaxaAtividade = float64(geral.Ativos) / float64(geral.Total) * 100
	}

	equipQuery := `
		SELECT e.nome AS equipamento,
			COUNT(p.id) AS total,
			COUNT(p.id) FILTER (WHERE p.ativo) AS ativos,
			COUNT(p.id) FILTER (WHERE NOT p.ativo) AS inativos
		FROM equipamentos e
		JOIN profissionais p ON p.equipamento_id = e.id` + where + `
		GROUP BY e.nome
		ORDER BY e.nome`
	if err := r.db.SelectContext(ctx, &stats.PorEquipamento, equipQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to get equipamento stats: %w", err)
	}

	if porCidade {
		cidadeQuery := `
			SELECT c.nome AS cidade,
				COUNT(p.id) AS total,
				COUNT(p.id) FILTER (WHERE p.ativo) AS ativos,
				COUNT(p.id) FILTER (WHERE NOT p.ativo) AS inativos
			FROM cidades c
			JOIN profissionais p ON p.cidade_id = c.id
			GROUP BY c.nome
			ORDER BY c.nome`
		if err := r.db.SelectContext(ctx, &stats.PorCidade, cidadeQuery); err != nil {
			return nil, fmt.Errorf("failed to get cidade stats: %w", err)
		}
	}

	profissaoQuery := `
		SELECT p.profissao, COUNT(p.id) AS total
		FROM profissionais p` + where + `
		GROUP BY p.profissao
		ORDER BY COUNT(p.id) DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &stats.PorProfissao, profissaoQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to get profissao stats: %w", err)
	}

	return stats, nil
}
