package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

type equipamentoRepository struct {
	BaseRepository
}

func NewEquipamentoRepository(base BaseRepository) repository.EquipamentoRepository {
	return &equipamentoRepository{base}
}

func (r *equipamentoRepository) Create(ctx context.Context, equipamento *model.Equipamento) error {
	query := `
		INSERT INTO equipamentos (nome, descricao, status, data_cadastro)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	equipamento.DataCadastro = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			equipamento.Nome,
			equipamento.Descricao,
			equipamento.Status,
			equipamento.DataCadastro,
		).Scan(&equipamento.ID)
	})
}

func (r *equipamentoRepository) Get(ctx context.Context, id int64) (*model.Equipamento, error) {
	query := `SELECT * FROM equipamentos WHERE id = $1`

	var equipamento model.Equipamento
	if err := r.db.GetContext(ctx, &equipamento, query, id); err != nil {
		return nil, fmt.Errorf("failed to get equipamento: %w", err)
	}

	return &equipamento, nil
}

func (r *equipamentoRepository) List(ctx context.Context, status string) ([]*model.Equipamento, error) {
	query := `SELECT * FROM equipamentos`
	args := []interface{}{}

	if status != "" && status != model.StatusTodos {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY nome"

	equipamentos := []*model.Equipamento{}
	if err := r.db.SelectContext(ctx, &equipamentos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list equipamentos: %w", err)
	}

	return equipamentos, nil
}

func (r *equipamentoRepository) Update(ctx context.Context, equipamento *model.Equipamento) error {
	query := `
		UPDATE equipamentos SET nome = $1, descricao = $2, status = $3
		WHERE id = $4
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			equipamento.Nome,
			equipamento.Descricao,
			equipamento.Status,
			equipamento.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update equipamento: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("equipamento not found")
		}

		return nil
	})
}
