// Package auditoria records and queries the immutable audit trail.
// Recording is best-effort: a failed insert is logged and swallowed so the
// triggering operation, already committed, is never affected.
package auditoria

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/acesso"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

type Service struct {
	repo        repository.AuditoriaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewService(repo repository.AuditoriaRepository, usuarioRepo repository.UsuarioRepository) *Service {
	return &Service{repo: repo, usuarioRepo: usuarioRepo}
}

// Registrar appends one audit entry. Snapshots are the record's wire
// representation before and after the mutation; either may be nil.
func (s *Service) Registrar(ctx context.Context, usuarioID int64, acao, tabela string, registroID int64, dadosAntigos, dadosNovos interface{}) {
	entrada := &model.Auditoria{
		UsuarioID:  usuarioID,
		Acao:       acao,
		Tabela:     tabela,
		RegistroID: registroID,
		DataHora:   time.Now(),
	}

	if ip := IPOrigem(ctx); ip != "" {
		entrada.IPOrigem = &ip
	}

	var err error
	if dadosAntigos != nil {
		if entrada.DadosAntigos, err = json.Marshal(dadosAntigos); err != nil {
			log.Error().Err(err).Str("tabela", tabela).Msg("failed to marshal audit snapshot")
			return
		}
	}
	if dadosNovos != nil {
		if entrada.DadosNovos, err = json.Marshal(dadosNovos); err != nil {
			log.Error().Err(err).Str("tabela", tabela).Msg("failed to marshal audit snapshot")
			return
		}
	}

	if err := s.repo.Create(ctx, entrada); err != nil {
		log.Error().Err(err).
			Str("acao", acao).
			Str("tabela", tabela).
			Int64("registro_id", registroID).
			Msg("failed to record audit entry")
	}
}

// Listar returns entries newest first, capped by the repository.
func (s *Service) Listar(ctx context.Context, atorID int64, filtros *model.AuditoriaFiltros) ([]*model.Auditoria, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeVerAuditoria(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	if filtros == nil {
		filtros = &model.AuditoriaFiltros{}
	}
	entradas, err := s.repo.List(ctx, filtros)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entradas, nil
}

func (s *Service) Estatisticas(ctx context.Context, atorID int64) (*model.AuditoriaEstatisticas, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeVerAuditoria(ator) {
		return nil, apperrors.Forbidden(nil)
	}

	stats, err := s.repo.Estatisticas(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}
