// Package memory implementa los repositorios en memoria. Se usa como backend
// de desarrollo (STORE_BACKEND=memory) y como fake en los tests de casos de uso.
// Los datos se pierden al reiniciar.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyStore)(nil)

// CompanyStore implementa repository.CompanyRepository sobre un mapa protegido por RWMutex.
type CompanyStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*entity.Company
	byCode  map[string]int64
	failErr error // si no es nil, todas las operaciones devuelven este error
}

// NewCompanyStore crea un almacén vacío.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		byID:   make(map[int64]*entity.Company),
		byCode: make(map[string]int64),
	}
}

// FailWith hace que las siguientes operaciones fallen con err (nil restablece).
func (s *CompanyStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *CompanyStore) Create(_ context.Context, c *entity.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if _, exists := s.byCode[c.Code]; exists {
		return domain.ErrDuplicate
	}
	s.nextID++
	now := time.Now()
	c.ID = s.nextID
	c.CreatedAt, c.UpdatedAt = now, now

	clone := *c
	s.byID[c.ID] = &clone
	s.byCode[c.Code] = c.ID
	return nil
}

func (s *CompanyStore) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (s *CompanyStore) List(_ context.Context, f query.CompanyFilter, page query.Page) ([]*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	matched := s.filter(f)
	sort.SliceStable(matched, func(i, j int) bool {
		if cmp := matched[i].AnnualRevenue.Cmp(matched[j].AnnualRevenue); cmp != 0 {
			return cmp > 0
		}
		return matched[i].ID < matched[j].ID
	})
	return query.Slice(matched, page), nil
}

func (s *CompanyStore) Count(_ context.Context, f query.CompanyFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.filter(f))), nil
}

func (s *CompanyStore) DistinctLevels(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	seen := map[int]bool{}
	levels := []int{}
	for _, c := range s.byID {
		if !seen[c.Level] {
			seen[c.Level] = true
			levels = append(levels, c.Level)
		}
	}
	sort.Ints(levels)
	return levels, nil
}

func (s *CompanyStore) Locations(_ context.Context) ([]entity.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	seen := map[entity.Location]bool{}
	out := []entity.Location{}
	for _, c := range s.byID {
		if c.Country == nil || c.City == nil {
			continue
		}
		l := entity.Location{Country: *c.Country, City: *c.City}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].City < out[j].City
	})
	return out, nil
}

func (s *CompanyStore) Totals(_ context.Context, f query.CompanyFilter) (repository.CompanyTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return repository.CompanyTotals{}, s.failErr
	}
	var t repository.CompanyTotals
	for _, c := range s.filter(f) {
		t.Count++
		t.Revenue = t.Revenue.Add(c.AnnualRevenue)
		if c.Employees != nil {
			t.Employees += *c.Employees
		}
	}
	return t, nil
}

func (s *CompanyStore) CountByDimension(_ context.Context, dim query.Dimension, f query.CompanyFilter) ([]query.GroupCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	if _, err := query.ParseDimension(string(dim)); err != nil {
		return nil, fmt.Errorf("count by dimension: %w: %s", domain.ErrInvalidInput, dim)
	}
	counts := map[string]int64{}
	var order []string
	for _, c := range s.filter(f) {
		key, ok := dimensionKey(c, dim)
		if !ok {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	out := make([]query.GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, query.GroupCount{Key: k, Count: counts[k]})
	}
	return out, nil
}

func (s *CompanyStore) CountByLevel(_ context.Context) ([]query.LevelCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	counts := map[int]int64{}
	for _, c := range s.byID {
		counts[c.Level]++
	}
	out := make([]query.LevelCount, 0, len(counts))
	for lvl, n := range counts {
		out = append(out, query.LevelCount{Level: lvl, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

func (s *CompanyStore) CountByFoundedYear(_ context.Context, minYear *int) ([]query.YearCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	counts := map[int]int64{}
	for _, c := range s.byID {
		if c.FoundedYear == nil {
			continue
		}
		if minYear != nil && *c.FoundedYear <= *minYear {
			continue
		}
		counts[*c.FoundedYear]++
	}
	out := make([]query.YearCount, 0, len(counts))
	for y, n := range counts {
		year := y
		out = append(out, query.YearCount{Year: &year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Year < *out[j].Year })
	return out, nil
}

// filter devuelve copias de las empresas que cumplen el filtro, en orden de ID.
func (s *CompanyStore) filter(f query.CompanyFilter) []*entity.Company {
	out := []*entity.Company{}
	if f.Contradictory() {
		return out
	}
	for _, c := range s.byID {
		if f.Matches(c) {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func dimensionKey(c *entity.Company, dim query.Dimension) (string, bool) {
	switch dim {
	case query.DimensionLevel:
		return strconv.Itoa(c.Level), true
	case query.DimensionCountry:
		if c.Country == nil {
			return "", false
		}
		return *c.Country, true
	case query.DimensionCity:
		if c.City == nil {
			return "", false
		}
		return *c.City, true
	}
	return "", false
}
