package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS cidades (
	id            BIGSERIAL PRIMARY KEY,
	nome          VARCHAR(255) NOT NULL UNIQUE,
	status        VARCHAR(10)  NOT NULL DEFAULT 'ativo',
	data_cadastro TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS equipamentos (
	id            BIGSERIAL PRIMARY KEY,
	nome          VARCHAR(255) NOT NULL,
	descricao     TEXT,
	status        VARCHAR(10)  NOT NULL DEFAULT 'ativo',
	data_cadastro TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS usuarios (
	id            BIGSERIAL PRIMARY KEY,
	nome_completo VARCHAR(255) NOT NULL,
	email         VARCHAR(255) NOT NULL UNIQUE,
	senha_hash    VARCHAR(255) NOT NULL,
	nivel_acesso  INTEGER      NOT NULL,
	cidade_id     BIGINT REFERENCES cidades(id),
	data_cadastro TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profissionais (
	id                    BIGSERIAL PRIMARY KEY,
	equipamento_id        BIGINT       NOT NULL REFERENCES equipamentos(id),
	nome_completo         VARCHAR(255) NOT NULL,
	data_nascimento       DATE         NOT NULL,
	cpf                   VARCHAR(14)  NOT NULL UNIQUE,
	rg                    VARCHAR(20)  NOT NULL UNIQUE,
	data_expedicao_rg     DATE         NOT NULL,
	escolaridade          VARCHAR(100) NOT NULL,
	profissao             VARCHAR(100) NOT NULL,
	cargo                 VARCHAR(100) NOT NULL,
	vinculo_institucional VARCHAR(255) NOT NULL,
	telefone              VARCHAR(20)  NOT NULL,
	email                 VARCHAR(255) NOT NULL UNIQUE,
	data_inicio_trabalho  DATE         NOT NULL,
	endereco_residencial  TEXT         NOT NULL,
	cidade_id             BIGINT       NOT NULL REFERENCES cidades(id),
	data_cadastro         TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	ativo                 BOOLEAN      NOT NULL DEFAULT TRUE,
	motivo_inativacao     TEXT,
	data_inativacao       TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS auditoria (
	id            BIGSERIAL PRIMARY KEY,
	usuario_id    BIGINT       NOT NULL,
	acao          VARCHAR(255) NOT NULL,
	tabela        VARCHAR(255) NOT NULL,
	registro_id   BIGINT       NOT NULL,
	dados_antigos JSONB,
	dados_novos   JSONB,
	data_hora     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	ip_origem     VARCHAR(45)
);

CREATE INDEX IF NOT EXISTS idx_profissionais_cidade ON profissionais(cidade_id);
CREATE INDEX IF NOT EXISTS idx_profissionais_equipamento ON profissionais(equipamento_id);
CREATE INDEX IF NOT EXISTS idx_auditoria_data_hora ON auditoria(data_hora);
`

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
