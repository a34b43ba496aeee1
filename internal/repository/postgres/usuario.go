package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
)

type usuarioRepository struct {
	BaseRepository
}

func NewUsuarioRepository(base BaseRepository) repository.UsuarioRepository {
	return &usuarioRepository{base}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	query := `
		INSERT INTO usuarios (nome_completo, email, senha_hash, nivel_acesso, cidade_id, data_cadastro)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	usuario.DataCadastro = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			usuario.NomeCompleto,
			usuario.Email,
			usuario.SenhaHash,
			usuario.NivelAcesso,
			usuario.CidadeID,
			usuario.DataCadastro,
		).Scan(&usuario.ID)
	})
}

func (r *usuarioRepository) Get(ctx context.Context, id int64) (*model.Usuario, error) {
	query := `SELECT * FROM usuarios WHERE id = $1`

	var usuario model.Usuario
	if err := r.db.GetContext(ctx, &usuario, query, id); err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}

	return &usuario, nil
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	query := `SELECT * FROM usuarios WHERE email = $1`

	var usuario model.Usuario
	if err := r.db.GetContext(ctx, &usuario, query, email); err != nil {
		return nil, fmt.Errorf("failed to get usuario by email: %w", err)
	}

	return &usuario, nil
}

func (r *usuarioRepository) List(ctx context.Context, escopoCidade *int64) ([]*model.Usuario, error) {
	query := `SELECT * FROM usuarios`
	args := []interface{}{}

	if escopoCidade != nil {
		query += " WHERE cidade_id = $1"
		args = append(args, *escopoCidade)
	}

	query += " ORDER BY nome_completo"

	usuarios := []*model.Usuario{}
	if err := r.db.SelectContext(ctx, &usuarios, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}

	return usuarios, nil
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	query := `
		UPDATE usuarios SET
			nome_completo = $1,
			email = $2,
			senha_hash = $3,
			nivel_acesso = $4,
			cidade_id = $5
		WHERE id = $6
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			usuario.NomeCompleto,
			usuario.Email,
			usuario.SenhaHash,
			usuario.NivelAcesso,
			usuario.CidadeID,
			usuario.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update usuario: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("usuario not found")
		}

		return nil
	})
}

func (r *usuarioRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM usuarios WHERE id = $1`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete usuario: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("usuario not found")
		}

		return nil
	})
}

func (r *usuarioRepository) ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("failed to check usuario email: %w", err)
	}

	return exists, nil
}
