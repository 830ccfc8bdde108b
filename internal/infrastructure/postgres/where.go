package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/company-admin/internal/domain/query"
)

// whereBuilder compone condiciones AND con parámetros posicionales ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
	never bool // el predicado no puede coincidir con ninguna fila
}

// arg registra un valor y devuelve su placeholder.
func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

// SQL devuelve la cláusula WHERE (con espacio inicial) o "" si no hay condiciones.
func (b *whereBuilder) SQL() string {
	if b.never {
		return " WHERE FALSE"
	}
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args devuelve los parámetros en orden; tras SQL() pueden añadirse más (LIMIT/OFFSET).
func (b *whereBuilder) Args() []any {
	return b.args
}

// companyWhere traduce el filtro de empresas a SQL.
func companyWhere(f query.CompanyFilter) *whereBuilder {
	b := &whereBuilder{}
	if f.Contradictory() {
		b.never = true
		return b
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		b.add(`name ILIKE ` + b.arg(likePattern(s)) + ` ESCAPE '\'`)
	}
	if len(f.Levels) > 0 {
		b.add("level = ANY(" + b.arg(f.Levels) + ")")
	}
	if len(f.Countries) > 0 {
		b.add("country = ANY(" + b.arg(f.Countries) + ")")
	}
	if len(f.Cities) > 0 {
		b.add("city = ANY(" + b.arg(f.Cities) + ")")
	}
	if f.FoundedYear.Min != nil {
		b.add("founded_year >= " + b.arg(*f.FoundedYear.Min))
	}
	if f.FoundedYear.Max != nil {
		b.add("founded_year <= " + b.arg(*f.FoundedYear.Max))
	}
	if f.AnnualRevenue.Min != nil {
		b.add("annual_revenue >= " + b.arg(*f.AnnualRevenue.Min))
	}
	if f.AnnualRevenue.Max != nil {
		b.add("annual_revenue <= " + b.arg(*f.AnnualRevenue.Max))
	}
	if f.Employees.Min != nil {
		b.add("employees >= " + b.arg(*f.Employees.Min))
	}
	if f.Employees.Max != nil {
		b.add("employees <= " + b.arg(*f.Employees.Max))
	}
	return b
}

// userWhere traduce el filtro de usuarios a SQL. La búsqueda cubre nombre O email.
func userWhere(f query.UserFilter) *whereBuilder {
	b := &whereBuilder{}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := b.arg(likePattern(s))
		b.add(`(name ILIKE ` + p + ` ESCAPE '\' OR email ILIKE ` + p + ` ESCAPE '\')`)
	}
	if len(f.Roles) > 0 {
		b.add("role = ANY(" + b.arg(f.Roles) + ")")
	}
	return b
}

// dimensionColumn columna (como texto) para cada dimensión de agrupación.
var dimensionColumn = map[query.Dimension]string{
	query.DimensionLevel:   "level",
	query.DimensionCountry: "country",
	query.DimensionCity:    "city",
}

// likePattern escapa los comodines de LIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
