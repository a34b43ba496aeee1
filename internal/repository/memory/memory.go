// Package memory provides map-backed implementations of the repository
// interfaces for tests. Filter semantics mirror the postgres
// implementations.
package memory

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/regsaude/profissionais-api/internal/model"
)

type CidadeRepository struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]model.Cidade
}

func NewCidadeRepository() *CidadeRepository {
	return &CidadeRepository{items: map[int64]model.Cidade{}}
}

func (r *CidadeRepository) Create(_ context.Context, c *model.Cidade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = r.seq
	c.DataCadastro = time.Now()
	r.items[c.ID] = *c
	return nil
}

func (r *CidadeRepository) Get(_ context.Context, id int64) (*model.Cidade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r *CidadeRepository) List(_ context.Context, status string) ([]*model.Cidade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Cidade{}
	for id := int64(1); id <= r.seq; id++ {
		c, ok := r.items[id]
		if !ok {
			continue
		}
		if status != "" && status != model.StatusTodos && c.Status != status {
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

func (r *CidadeRepository) Update(_ context.Context, c *model.Cidade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return sql.ErrNoRows
	}
	r.items[c.ID] = *c
	return nil
}

func (r *CidadeRepository) ExistsNome(_ context.Context, nome string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.Nome == nome && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type EquipamentoRepository struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]model.Equipamento
}

func NewEquipamentoRepository() *EquipamentoRepository {
	return &EquipamentoRepository{items: map[int64]model.Equipamento{}}
}

func (r *EquipamentoRepository) Create(_ context.Context, e *model.Equipamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.ID = r.seq
	e.DataCadastro = time.Now()
	r.items[e.ID] = *e
	return nil
}

func (r *EquipamentoRepository) Get(_ context.Context, id int64) (*model.Equipamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r *EquipamentoRepository) List(_ context.Context, status string) ([]*model.Equipamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Equipamento{}
	for id := int64(1); id <= r.seq; id++ {
		e, ok := r.items[id]
		if !ok {
			continue
		}
		if status != "" && status != model.StatusTodos && e.Status != status {
			continue
		}
		out = append(out, &e)
	}
	return out, nil
}

func (r *EquipamentoRepository) Update(_ context.Context, e *model.Equipamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return sql.ErrNoRows
	}
	r.items[e.ID] = *e
	return nil
}

type UsuarioRepository struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]model.Usuario
}

func NewUsuarioRepository() *UsuarioRepository {
	return &UsuarioRepository{items: map[int64]model.Usuario{}}
}

func (r *UsuarioRepository) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = r.seq
	u.DataCadastro = time.Now()
	r.items[u.ID] = *u
	return nil
}

func (r *UsuarioRepository) Get(_ context.Context, id int64) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *UsuarioRepository) GetByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *UsuarioRepository) List(_ context.Context, escopoCidade *int64) ([]*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Usuario{}
	for id := int64(1); id <= r.seq; id++ {
		u, ok := r.items[id]
		if !ok {
			continue
		}
		if escopoCidade != nil && (u.CidadeID == nil || *u.CidadeID != *escopoCidade) {
			continue
		}
		out = append(out, &u)
	}
	return out, nil
}

func (r *UsuarioRepository) Update(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return sql.ErrNoRows
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UsuarioRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *UsuarioRepository) ExistsEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type ProfissionalRepository struct {
	mu           sync.Mutex
	seq          int64
	items        map[int64]model.Profissional
	cidades      *CidadeRepository
	equipamentos *EquipamentoRepository
}

func NewProfissionalRepository(cidades *CidadeRepository, equipamentos *EquipamentoRepository) *ProfissionalRepository {
	return &ProfissionalRepository{
		items:        map[int64]model.Profissional{},
		cidades:      cidades,
		equipamentos: equipamentos,
	}
}

func (r *ProfissionalRepository) Create(_ context.Context, p *model.Profissional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	p.DataCadastro = time.Now()
	p.Ativo = true
	r.items[p.ID] = *p
	return nil
}

func (r *ProfissionalRepository) Get(_ context.Context, id int64) (*model.Profissional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func combina(p *model.Profissional, filtros *model.ProfissionalFiltros) bool {
	if filtros.EscopoCidade != nil && p.CidadeID != *filtros.EscopoCidade {
		return false
	}
	switch filtros.Status {
	case model.StatusAtivo, "":
		if !p.Ativo {
			return false
		}
	case model.StatusInativo:
		if p.Ativo {
			return false
		}
	}
	if filtros.CidadeID != nil && p.CidadeID != *filtros.CidadeID {
		return false
	}
	if filtros.EquipamentoID != nil && p.EquipamentoID != *filtros.EquipamentoID {
		return false
	}
	if filtros.Profissao != "" && !strings.Contains(strings.ToLower(p.Profissao), strings.ToLower(filtros.Profissao)) {
		return false
	}
	if filtros.Cargo != "" && !strings.Contains(strings.ToLower(p.Cargo), strings.ToLower(filtros.Cargo)) {
		return false
	}
	return true
}

func (r *ProfissionalRepository) List(_ context.Context, filtros *model.ProfissionalFiltros) ([]*model.Profissional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Profissional{}
	for id := int64(1); id <= r.seq; id++ {
		p, ok := r.items[id]
		if !ok || !combina(&p, filtros) {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (r *ProfissionalRepository) ListComNomes(ctx context.Context, filtros *model.ProfissionalFiltros) ([]*model.ProfissionalRelatorio, error) {
	profissionais, err := r.List(ctx, filtros)
	if err != nil {
		return nil, err
	}

	linhas := make([]*model.ProfissionalRelatorio, 0, len(profissionais))
	for _, p := range profissionais {
		linha := &model.ProfissionalRelatorio{
			Profissional:    *p,
			CidadeNome:      "N/A",
			EquipamentoNome: "N/A",
		}
		if r.cidades != nil {
			if c, err := r.cidades.Get(ctx, p.CidadeID); err == nil {
				linha.CidadeNome = c.Nome
			}
		}
		if r.equipamentos != nil {
			if e, err := r.equipamentos.Get(ctx, p.EquipamentoID); err == nil {
				linha.EquipamentoNome = e.Nome
			}
		}
		linhas = append(linhas, linha)
	}
	return linhas, nil
}

func (r *ProfissionalRepository) Update(_ context.Context, p *model.Profissional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return sql.ErrNoRows
	}
	r.items[p.ID] = *p
	return nil
}

func (r *ProfissionalRepository) existsBy(valor func(model.Profissional) string, procurado string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if valor(p) == procurado && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProfissionalRepository) ExistsCPF(_ context.Context, cpf string, excludeID int64) (bool, error) {
	return r.existsBy(func(p model.Profissional) string { return p.CPF }, cpf, excludeID)
}

func (r *ProfissionalRepository) ExistsRG(_ context.Context, rg string, excludeID int64) (bool, error) {
	return r.existsBy(func(p model.Profissional) string { return p.RG }, rg, excludeID)
}

func (r *ProfissionalRepository) ExistsEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	return r.existsBy(func(p model.Profissional) string { return p.Email }, email, excludeID)
}

func (r *ProfissionalRepository) Estatisticas(ctx context.Context, escopoCidade *int64, porCidade bool) (*model.EstatisticasProfissionais, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &model.EstatisticasProfissionais{
		PorEquipamento: []model.EstatisticaEquipamento{},
		PorCidade:      []model.EstatisticaCidade{},
		PorProfissao:   []model.EstatisticaProfissao{},
	}

	porProfissao := map[string]int64{}
	porEquipamento := map[int64]*model.EstatisticaEquipamento{}
	for _, p := range r.items {
		if escopoCidade != nil && p.CidadeID != *escopoCidade {
			continue
		}
		stats.Geral.TotalProfissionais++
		if p.Ativo {
			stats.Geral.ProfissionaisAtivos++
		} else {
			stats.Geral.ProfissionaisInativos++
		}
		porProfissao[p.Profissao]++

		e, ok := porEquipamento[p.EquipamentoID]
		if !ok {
			nome := "N/A"
			if r.equipamentos != nil {
				if eq, err := r.equipamentos.Get(ctx, p.EquipamentoID); err == nil {
					nome = eq.Nome
				}
			}
			e = &model.EstatisticaEquipamento{Equipamento: nome}
			porEquipamento[p.EquipamentoID] = e
		}
		e.Total++
		if p.Ativo {
			e.Ativos++
		} else {
			e.Inativos++
		}
	}
	if stats.Geral.TotalProfissionais > 0 {
		stats.Geral.TaxaAtividade = float64(stats.Geral.ProfissionaisAtivos) / float64(stats.Geral.TotalProfissionais) * 100
	}

	for profissao, total := range porProfissao {
		stats.PorProfissao = append(stats.PorProfissao, model.EstatisticaProfissao{Profissao: profissao, Total: total})
	}
	for _, e := range porEquipamento {
		stats.PorEquipamento = append(stats.PorEquipamento, *e)
	}

	if porCidade {
		porCidadeMapa := map[int64]*model.EstatisticaCidade{}
		for _, p := range r.items {
			e, ok := porCidadeMapa[p.CidadeID]
			if !ok {
				nome := "N/A"
				if r.cidades != nil {
					if c, err := r.cidades.Get(ctx, p.CidadeID); err == nil {
						nome = c.Nome
					}
				}
				e = &model.EstatisticaCidade{Cidade: nome}
				porCidadeMapa[p.CidadeID] = e
			}
			e.Total++
			if p.Ativo {
				e.Ativos++
			} else {
				e.Inativos++
			}
		}
		for _, e := range porCidadeMapa {
			stats.PorCidade = append(stats.PorCidade, *e)
		}
	}

	return stats, nil
}

// maxRows mirrors the listing cap of the postgres audit repository.
const maxRows = 1000

type AuditoriaRepository struct {
	mu     sync.Mutex
	seq    int64
	Items  []model.Auditoria
	Falhar error
}

func NewAuditoriaRepository() *AuditoriaRepository {
	return &AuditoriaRepository{}
}

func (r *AuditoriaRepository) Create(_ context.Context, entrada *model.Auditoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Falhar != nil {
		return r.Falhar
	}
	r.seq++
	entrada.ID = r.seq
	r.Items = append(r.Items, *entrada)
	return nil
}

func (r *AuditoriaRepository) List(_ context.Context, filtros *model.AuditoriaFiltros) ([]*model.Auditoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Auditoria{}
	for i := len(r.Items) - 1; i >= 0; i-- {
		a := r.Items[i]
		if filtros != nil {
			if filtros.Tabela != "" && a.Tabela != filtros.Tabela {
				continue
			}
			if filtros.Acao != "" && a.Acao != filtros.Acao {
				continue
			}
			if filtros.UsuarioID != nil && a.UsuarioID != *filtros.UsuarioID {
				continue
			}
			if filtros.DataInicio != nil && a.DataHora.Before(*filtros.DataInicio) {
				continue
			}
			if filtros.DataFim != nil && a.DataHora.After(*filtros.DataFim) {
				continue
			}
		}
		out = append(out, &a)
		if len(out) == maxRows {
			break
		}
	}
	return out, nil
}

func (r *AuditoriaRepository) Estatisticas(_ context.Context) (*model.AuditoriaEstatisticas, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acoes := map[string]int64{}
	tabelas := map[string]int64{}
	for _, a := range r.Items {
		acoes[a.Acao]++
		tabelas[a.Tabela]++
	}

	stats := &model.AuditoriaEstatisticas{
		Acoes:    []model.ContagemAcao{},
		Tabelas:  []model.ContagemTabela{},
		Usuarios: []model.ContagemUsuario{},
	}
	for acao, total := range acoes {
		stats.Acoes = append(stats.Acoes, model.ContagemAcao{Acao: acao, Total: total})
	}
	for tabela, total := range tabelas {
		stats.Tabelas = append(stats.Tabelas, model.ContagemTabela{Tabela: tabela, Total: total})
	}
	return stats, nil
}

// Ultima returns the most recent audit entry, nil when empty.
func (r *AuditoriaRepository) Ultima() *model.Auditoria {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Items) == 0 {
		return nil
	}
	a := r.Items[len(r.Items)-1]
	return &a
}
