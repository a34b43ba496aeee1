// Package profissional implements the professional registry: city-scoped
// listing, uniqueness enforcement on CPF, RG and email, and the soft
// inactivate/reactivate lifecycle.
package profissional

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/regsaude/profissionais-api/internal/model"
	"github.com/regsaude/profissionais-api/internal/repository"
	"github.com/regsaude/profissionais-api/internal/service/acesso"
	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

const motivoNaoInformado = "Não informado"

type Service struct {
	repo        repository.ProfissionalRepository
	usuarioRepo repository.UsuarioRepository
	auditor     *auditoria.Service
}

func NewService(repo repository.ProfissionalRepository, usuarioRepo repository.UsuarioRepository, auditor *auditoria.Service) *Service {
	return &Service{repo: repo, usuarioRepo: usuarioRepo, auditor: auditor}
}

// Listar applies the caller's filters narrowed to their city scope.
func (s *Service) Listar(ctx context.Context, atorID int64, filtros *model.ProfissionalFiltros) ([]*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if ator == nil {
		return nil, apperrors.Forbidden(nil)
	}

	if filtros == nil {
		filtros = &model.ProfissionalFiltros{}
	}
	filtros.EscopoCidade = acesso.EscopoCidade(ator)

	profissionais, err := s.repo.List(ctx, filtros)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return profissionais, nil
}

func (s *Service) Buscar(ctx context.Context, atorID, id int64) (*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	profissional, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acesso.PodeVerProfissional(ator, profissional) {
		return nil, apperrors.Forbidden(nil)
	}
	return profissional, nil
}

func (s *Service) Criar(ctx context.Context, atorID int64, req *model.CriarProfissionalRequest) (*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acesso.PodeEditarProfissional(ator, nil) {
		return nil, apperrors.Forbidden(nil)
	}

	if err := s.verificarUnicidade(ctx, req.CPF, req.RG, req.Email, 0); err != nil {
		return nil, err
	}

	profissional := &model.Profissional{
		EquipamentoID:        req.EquipamentoID,
		NomeCompleto:         req.NomeCompleto,
		DataNascimento:       req.DataNascimento,
		CPF:                  req.CPF,
		RG:                   req.RG,
		DataExpedicaoRG:      req.DataExpedicaoRG,
		Escolaridade:         req.Escolaridade,
		Profissao:            req.Profissao,
		Cargo:                req.Cargo,
		VinculoInstitucional: req.VinculoInstitucional,
		Telefone:             req.Telefone,
		Email:                req.Email,
		DataInicioTrabalho:   req.DataInicioTrabalho,
		EnderecoResidencial:  req.EnderecoResidencial,
		CidadeID:             req.CidadeID,
		Ativo:                true,
	}

	if err := s.repo.Create(ctx, profissional); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("CPF já cadastrado", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoCreate, model.TabelaProfissionais, profissional.ID, nil, profissional)
	return profissional, nil
}

func (s *Service) Atualizar(ctx context.Context, atorID, id int64, patch *model.AtualizarProfissionalRequest) (*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	profissional, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acesso.PodeEditarProfissional(ator, profissional) {
		return nil, apperrors.Forbidden(nil)
	}
	antigos := *profissional

	cpf, rg, email := profissional.CPF, profissional.RG, profissional.Email
	if patch.CPF != nil {
		cpf = *patch.CPF
	}
	if patch.RG != nil {
		rg = *patch.RG
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.verificarUnicidade(ctx, cpf, rg, email, id); err != nil {
		return nil, err
	}

	aplicarPatch(profissional, patch)

	if err := s.repo.Update(ctx, profissional); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("CPF já cadastrado", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoUpdate, model.TabelaProfissionais, profissional.ID, &antigos, profissional)
	return profissional, nil
}

// Inativar soft-deletes: the row stays, flagged inactive with a reason and
// timestamp. An absent reason is stored as "Não informado".
func (s *Service) Inativar(ctx context.Context, atorID, id int64, req *model.InativarProfissionalRequest) (*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	profissional, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acesso.PodeEditarProfissional(ator, profissional) {
		return nil, apperrors.Forbidden(nil)
	}
	antigos := *profissional

	motivo := motivoNaoInformado
	if req != nil && req.MotivoInativacao != "" {
		motivo = req.MotivoInativacao
	}
	agora := time.Now()

	profissional.Ativo = false
	profissional.MotivoInativacao = &motivo
	profissional.DataInativacao = &agora

	if err := s.repo.Update(ctx, profissional); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoDelete, model.TabelaProfissionais, profissional.ID, &antigos, profissional)
	return profissional, nil
}

// Reativar clears the inactivation fields. Audited as an update, not a
// create: the record never left the table.
func (s *Service) Reativar(ctx context.Context, atorID, id int64) (*model.Profissional, error) {
	ator, err := acesso.Ator(ctx, s.usuarioRepo, atorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	profissional, err := s.carregar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acesso.PodeEditarProfissional(ator, profissional) {
		return nil, apperrors.Forbidden(nil)
	}
	antigos := *profissional

	profissional.Ativo = true
	profissional.MotivoInativacao = nil
	profissional.DataInativacao = nil

	if err := s.repo.Update(ctx, profissional); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.auditor.Registrar(ctx, atorID, model.AcaoUpdate, model.TabelaProfissionais, profissional.ID, &antigos, profissional)
	return profissional, nil
}

func (s *Service) verificarUnicidade(ctx context.Context, cpf, rg, email string, excludeID int64) error {
	existe, err := s.repo.ExistsCPF(ctx, cpf, excludeID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if existe {
		return apperrors.Conflict("CPF já cadastrado", nil)
	}

	existe, err = s.repo.ExistsRG(ctx, rg, excludeID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if existe {
		return apperrors.Conflict("RG já cadastrado", nil)
	}

	existe, err = s.repo.ExistsEmail(ctx, email, excludeID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if existe {
		return apperrors.Conflict("Email já cadastrado", nil)
	}
	return nil
}

func (s *Service) carregar(ctx context.Context, id int64) (*model.Profissional, error) {
	profissional, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Profissional não encontrado", err)
		}
		return nil, apperrors.Internal(err)
	}
	return profissional, nil
}

func aplicarPatch(p *model.Profissional, patch *model.AtualizarProfissionalRequest) {
	if patch.EquipamentoID != nil {
		p.EquipamentoID = *patch.EquipamentoID
	}
	if patch.NomeCompleto != nil {
		p.NomeCompleto = *patch.NomeCompleto
	}
	if patch.DataNascimento != nil {
		p.DataNascimento = *patch.DataNascimento
	}
	if patch.CPF != nil {
		p.CPF = *patch.CPF
	}
	if patch.RG != nil {
		p.RG = *patch.RG
	}
	if patch.DataExpedicaoRG != nil {
		p.DataExpedicaoRG = *patch.DataExpedicaoRG
	}
	if patch.Escolaridade != nil {
		p.Escolaridade = *patch.Escolaridade
	}
	if patch.Profissao != nil {
		p.Profissao = *patch.Profissao
	}
	if patch.Cargo != nil {
		p.Cargo = *patch.Cargo
	}
	if patch.VinculoInstitucional != nil {
		p.VinculoInstitucional = *patch.VinculoInstitucional
	}
	if patch.Telefone != nil {
		p.Telefone = *patch.Telefone
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.DataInicioTrabalho != nil {
		p.DataInicioTrabalho = *patch.DataInicioTrabalho
	}
	if patch.EnderecoResidencial != nil {
		p.EnderecoResidencial = *patch.EnderecoResidencial
	}
	if patch.CidadeID != nil {
		p.CidadeID = *patch.CidadeID
	}
}
