package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

type cidadeRepository struct {
	BaseRepository
}

func NewCidadeRepository(base BaseRepository) repository.CidadeRepository {
	return &cidadeRepository{base}
}

func (r *cidadeRepository) Create(ctx context.Context, cidade *model.Cidade) error {
	query := `
		INSERT INTO cidades (nome, status, data_cadastro)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	cidade.DataCadastro = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			cidade.Nome,
			cidade.Status,
			cidade.DataCadastro,
		).Scan(&cidade.ID)
	})
}

func (r *cidadeRepository) Get(ctx context.Context, id int64) (*model.Cidade, error) {
	query := `SELECT * FROM cidades WHERE id = $1`

	var cidade model.Cidade
	if err := r.db.GetContext(ctx, &cidade, query, id); err != nil {
		return nil, fmt.Errorf("failed to get cidade: %w", err)
	}

	return &cidade, nil
}

func (r *cidadeRepository) List(ctx context.Context, status string) ([]*model.Cidade, error) {
	query := `SELECT * FROM cidades`
	args := []interface{}{}

	if status != "" && status != model.StatusTodos {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY nome"

	cidades := []*model.Cidade{}
	if err := r.db.SelectContext(ctx, &cidades, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cidades: %w", err)
	}

	return cidades, nil
}

func (r *cidadeRepository) Update(ctx context.Context, cidade *model.Cidade) error {
	query := `
		UPDATE cidades SET nome = $1, status = $2
		WHERE id = $3
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, cidade.Nome, cidade.Status, cidade.ID)
		if err != nil {
			return fmt.Errorf("failed to update cidade: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("cidade not found")
		}

		return nil
	})
}

func (r *cidadeRepository) ExistsNome(ctx context.Context, nome string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cidades WHERE nome = $1 AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, nome, excludeID); err != nil {
		return false, fmt.Errorf("failed to check cidade nome: %w", err)
	}

	return exists, nil
}
