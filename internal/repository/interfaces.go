package repository

import (
	"context"

	"github.com/regsaude/profissionais-api/internal/model"
)

type CidadeRepository interface {
	Create(ctx context.Context, cidade *model.Cidade) error
	Get(ctx context.Context, id int64) (*model.Cidade, error)
	List(ctx context.Context, status string) ([]*model.Cidade, error)
	Update(ctx context.Context, cidade *model.Cidade) error
	ExistsNome(ctx context.Context, nome string, excludeID int64) (bool, error)
}

type EquipamentoRepository interface {
	Create(ctx context.Context, equipamento *model.Equipamento) error
	Get(ctx context.Context, id int64) (*model.Equipamento, error)
	List(ctx context.Context, status string) ([]*model.Equipamento, error)
	Update(ctx context.Context, equipamento *model.Equipamento) error
}

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	Get(ctx context.Context, id int64) (*model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	List(ctx context.Context, escopoCidade *int64) ([]*model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	Delete(ctx context.Context, id int64) error
	ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type ProfissionalRepository interface {
	Create(ctx context.Context, profissional *model.Profissional) error
	Get(ctx context.Context, id int64) (*model.Profissional, error)
	List(ctx context.Context, filtros *model.ProfissionalFiltros) ([]*model.Profissional, error)
	ListComNomes(ctx context.Context, filtros *model.ProfissionalFiltros) ([]*model.ProfissionalRelatorio, error)
	Update(ctx context.Context, profissional *model.Profissional) error
	ExistsCPF(ctx context.Context, cpf string, excludeID int64) (bool, error)
	ExistsRG(ctx context.Context, rg string, excludeID int64) (bool, error)
	ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Estatisticas(ctx context.Context, escopoCidade *int64, porCidade bool) (*model.EstatisticasProfissionais, error)
}

type AuditoriaRepository interface {
	Create(ctx context.Context, entrada *model.Auditoria) error
	List(ctx context.Context, filtros *model.AuditoriaFiltros) ([]*model.Auditoria, error)
	Estatisticas(ctx context.Context) (*model.AuditoriaEstatisticas, error)
}
