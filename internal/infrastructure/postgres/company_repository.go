package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, code, name, level, country, city, founded_year, annual_revenue, employees, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y completa ID y timestamps.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	const stmt = `
		INSERT INTO companies (code, name, level, country, city, founded_year, annual_revenue, employees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, stmt,
		c.Code, c.Name, c.Level, c.Country, c.City, c.FoundedYear, c.AnnualRevenue, c.Employees,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapError("insert company", err, domain.ErrDuplicate)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	row := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get company", err, nil)
	}
	return c, nil
}

// List devuelve la página de empresas filtradas, por ingresos descendente.
func (r *CompanyRepo) List(ctx context.Context, f query.CompanyFilter, page query.Page) ([]*entity.Company, error) {
	w := companyWhere(f)
	if w.never {
		return []*entity.Company{}, nil
	}
	sql := `SELECT ` + companyColumns + ` FROM companies` + w.SQL() +
		` ORDER BY annual_revenue DESC, id ASC LIMIT ` + w.arg(page.Limit()) + ` OFFSET ` + w.arg(page.Offset())

	rows, err := r.q.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, mapError("list companies", err, nil)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0, page.Limit())
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list companies", err, nil)
	}
	return list, nil
}

// Count total de empresas que cumplen el filtro.
func (r *CompanyRepo) Count(ctx context.Context, f query.CompanyFilter) (int64, error) {
	w := companyWhere(f)
	if w.never {
		return 0, nil
	}
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies`+w.SQL(), w.Args()...).Scan(&n); err != nil {
		return 0, mapError("count companies", err, nil)
	}
	return n, nil
}

// DistinctLevels niveles existentes, ascendente.
func (r *CompanyRepo) DistinctLevels(ctx context.Context) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT level FROM companies ORDER BY level ASC`)
	if err != nil {
		return nil, mapError("distinct levels", err, nil)
	}
	levels, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, mapError("distinct levels", err, nil)
	}
	return levels, nil
}

// Locations pares país/ciudad distintos, sin nulos.
func (r *CompanyRepo) Locations(ctx context.Context) ([]entity.Location, error) {
	const stmt = `
		SELECT DISTINCT country, city FROM companies
		 WHERE country IS NOT NULL AND city IS NOT NULL
		 ORDER BY country, city`
	rows, err := r.q.Query(ctx, stmt)
	if err != nil {
		return nil, mapError("locations", err, nil)
	}
	defer rows.Close()
	out := []entity.Location{}
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.Country, &l.City); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Totals cuenta empresas y suma ingresos y empleados. COALESCE devuelve cero sin filas.
func (r *CompanyRepo) Totals(ctx context.Context, f query.CompanyFilter) (repository.CompanyTotals, error) {
	var t repository.CompanyTotals
	w := companyWhere(f)
	sql := `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(annual_revenue), 0),
	    COALESCE(SUM(employees), 0)::BIGINT
	FROM companies` + w.SQL()
	if err := r.q.QueryRow(ctx, sql, w.Args()...).Scan(&t.Count, &t.Revenue, &t.Employees); err != nil {
		return repository.CompanyTotals{}, mapError("company totals", err, nil)
	}
	return t, nil
}

// CountByDimension agrupa por la dimensión indicada excluyendo nulos.
func (r *CompanyRepo) CountByDimension(ctx context.Context, dim query.Dimension, f query.CompanyFilter) ([]query.GroupCount, error) {
	col, ok := dimensionColumn[dim]
	if !ok {
		return nil, fmt.Errorf("count by dimension: %w: %s", domain.ErrInvalidInput, dim)
	}
	w := companyWhere(f)
	if w.never {
		return []query.GroupCount{}, nil
	}
	w.add(col + " IS NOT NULL")
	sql := `SELECT ` + col + `::TEXT, COUNT(*) FROM companies` + w.SQL() + ` GROUP BY ` + col

	rows, err := r.q.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, mapError("count by "+string(dim), err, nil)
	}
	defer rows.Close()
	out := []query.GroupCount{}
	for rows.Next() {
		var g query.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// CountByLevel distribución por nivel, ascendente.
func (r *CompanyRepo) CountByLevel(ctx context.Context) ([]query.LevelCount, error) {
	rows, err := r.q.Query(ctx, `SELECT level, COUNT(*) FROM companies GROUP BY level ORDER BY level ASC`)
	if err != nil {
		return nil, mapError("count by level", err, nil)
	}
	defer rows.Close()
	out := []query.LevelCount{}
	for rows.Next() {
		var lc query.LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan level count: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// CountByFoundedYear empresas por año de fundación, ascendente; excluye años nulos.
func (r *CompanyRepo) CountByFoundedYear(ctx context.Context, minYear *int) ([]query.YearCount, error) {
	w := &whereBuilder{}
	w.add("founded_year IS NOT NULL")
	if minYear != nil {
		w.add("founded_year > " + w.arg(*minYear))
	}
	sql := `SELECT founded_year, COUNT(*) FROM companies` + w.SQL() + ` GROUP BY founded_year ORDER BY founded_year ASC`

	rows, err := r.q.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, mapError("count by founded year", err, nil)
	}
	defer rows.Close()
	out := []query.YearCount{}
	for rows.Next() {
		var yc query.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("scan year count: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Level, &c.Country, &c.City,
		&c.FoundedYear, &c.AnnualRevenue, &c.Employees, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
