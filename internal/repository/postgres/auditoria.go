package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

// maxAuditRows caps audit listings; the trail is unbounded and append-only.
const maxAuditRows = 1000

type auditoriaRepository struct {
	BaseRepository
}

func NewAuditoriaRepository(base BaseRepository) repository.AuditoriaRepository {
	return &auditoriaRepository{base}
}

func (r *auditoriaRepository) Create(ctx context.Context, entrada *model.Auditoria) error {
	query := `
		INSERT INTO auditoria (
			usuario_id, acao, tabela, registro_id,
			dados_antigos, dados_novos, data_hora, ip_origem
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			entrada.UsuarioID,
			entrada.Acao,
			entrada.Tabela,
			entrada.RegistroID,
			entrada.DadosAntigos,
			entrada.DadosNovos,
			entrada.DataHora,
			entrada.IPOrigem,
		).Scan(&entrada.ID)
	})
}

func (r *auditoriaRepository) List(ctx context.Context, filtros *model.AuditoriaFiltros) ([]*model.Auditoria, error) {
	query := `SELECT * FROM auditoria WHERE 1=1`
	args := []interface{}{}

	if filtros.Tabela != "" {
		args = append(args, filtros.Tabela)
		query += fmt.Sprintf(" AND tabela = $%d", len(args))
	}

	if filtros.Acao != "" {
		args = append(args, filtros.Acao)
		query += fmt.Sprintf(" AND acao = $%d", len(args))
	}

	if filtros.UsuarioID != nil {
		args = append(args, *filtros.UsuarioID)
		query += fmt.Sprintf(" AND usuario_id = $%d", len(args))
	}

	if filtros.DataInicio != nil {
		args = append(args, *filtros.DataInicio)
		query += fmt.Sprintf(" AND data_hora >= $%d", len(args))
	}

	if filtros.DataFim != nil {
		args = append(args, *filtros.DataFim)
		query += fmt.Sprintf(" AND data_hora <= $%d", len(args))
	}

	args = append(args, maxAuditRows)
	query += fmt.Sprintf(" ORDER BY data_hora DESC LIMIT $%d", len(args))

	entradas := []*model.Auditoria{}
	if err := r.db.SelectContext(ctx, &entradas, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list auditoria: %w", err)
	}

	return entradas, nil
}

func (r *auditoriaRepository) Estatisticas(ctx context.Context) (*model.AuditoriaEstatisticas, error) {
	stats := &model.AuditoriaEstatisticas{
		Acoes:    []model.ContagemAcao{},
		Tabelas:  []model.ContagemTabela{},
		Usuarios: []model.ContagemUsuario{},
	}

	acaoQuery := `
		SELECT acao, COUNT(id) AS total
		FROM auditoria
		GROUP BY acao
		ORDER BY acao`
	if err := r.db.SelectContext(ctx, &stats.Acoes, acaoQuery); err != nil {
		return nil, fmt.Errorf("failed to get acao stats: %w", err)
	}

	tabelaQuery := `
		SELECT tabela, COUNT(id) AS total
		FROM auditoria
		GROUP BY tabela
		ORDER BY tabela`
	if err := r.db.SelectContext(ctx, &stats.Tabelas, tabelaQuery); err != nil {
		return nil, fmt.Errorf("failed to get tabela stats: %w", err)
	}

	usuarioQuery := `
		SELECT u.nome_completo AS usuario, COUNT(a.id) AS total
		FROM usuarios u
		JOIN auditoria a ON a.usuario_id = u.id
		GROUP BY u.nome_completo
		ORDER BY u.nome_completo`
	if err := r.db.SelectContext(ctx, &stats.Usuarios, usuarioQuery); err != nil {
		return nil, fmt.Errorf("failed to get usuario stats: %w", err)
	}

	return stats, nil
}
