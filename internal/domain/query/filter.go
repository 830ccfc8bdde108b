// Package query contiene la capa de filtrado, paginación y agregación que
// comparten los listados, los gráficos y el dashboard.
//
// Un filtro se traduce a un predicado de dos formas: Matches (evaluación en
// memoria) y el constructor SQL del paquete postgres. Ambas deben coincidir.
package query

import (
	"strings"

	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IntRange rango entero inclusivo; un límite nil no restringe.
type IntRange struct {
	Min *int64
	Max *int64
}

// IsSet informa si el rango tiene al menos un límite.
func (r IntRange) IsSet() bool { return r.Min != nil || r.Max != nil }

// Contradictory es true cuando min > max: el rango no admite ningún valor.
func (r IntRange) Contradictory() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

// Contains evalúa v contra el rango. Un valor nil solo pasa si el rango no está definido.
func (r IntRange) Contains(v *int64) bool {
	if !r.IsSet() {
		return true
	}
	if v == nil {
		return false
	}
	if r.Min != nil && *v < *r.Min {
		return false
	}
	if r.Max != nil && *v > *r.Max {
		return false
	}
	return true
}

// DecimalRange rango inclusivo sobre montos de precisión arbitraria.
type DecimalRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r DecimalRange) IsSet() bool { return r.Min != nil || r.Max != nil }

func (r DecimalRange) Contradictory() bool {
	return r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max)
}

func (r DecimalRange) Contains(v decimal.Decimal) bool {
	if r.Min != nil && v.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// CompanyFilter criterios de búsqueda sobre empresas. Los criterios se combinan con AND.
type CompanyFilter struct {
	Search        string // subcadena sobre el nombre
	Levels        []int
	Countries     []string
	Cities        []string
	FoundedYear   IntRange
	AnnualRevenue DecimalRange
	Employees     IntRange
}

// Empty informa si el filtro no impone ninguna restricción.
func (f CompanyFilter) Empty() bool {
	return strings.TrimSpace(f.Search) == "" &&
		len(f.Levels) == 0 && len(f.Countries) == 0 && len(f.Cities) == 0 &&
		!f.FoundedYear.IsSet() && !f.AnnualRevenue.IsSet() && !f.Employees.IsSet()
}

// Contradictory informa si algún rango tiene min > max; el filtro no coincide con nada.
func (f CompanyFilter) Contradictory() bool {
	return f.FoundedYear.Contradictory() || f.AnnualRevenue.Contradictory() || f.Employees.Contradictory()
}

// Matches evalúa el predicado sobre una empresa.
func (f CompanyFilter) Matches(c *entity.Company) bool {
	if f.Contradictory() {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" && !containsFold(c.Name, s) {
		return false
	}
	if len(f.Levels) > 0 && !contains(f.Levels, c.Level) {
		return false
	}
	if len(f.Countries) > 0 && (c.Country == nil || !contains(f.Countries, *c.Country)) {
		return false
	}
	if len(f.Cities) > 0 && (c.City == nil || !contains(f.Cities, *c.City)) {
		return false
	}
	var year *int64
	if c.FoundedYear != nil {
		y := int64(*c.FoundedYear)
		year = &y
	}
	if !f.FoundedYear.Contains(year) {
		return false
	}
	if !f.AnnualRevenue.Contains(c.AnnualRevenue) {
		return false
	}
	return f.Employees.Contains(c.Employees)
}

// UserFilter criterios de búsqueda sobre usuarios.
type UserFilter struct {
	Search string // subcadena sobre nombre O email
	Roles  []string
}

func (f UserFilter) Empty() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Roles) == 0
}

// Matches evalúa el predicado sobre un usuario.
func (f UserFilter) Matches(u *entity.User) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		nameHit := u.Name != nil && containsFold(*u.Name, s)
		if !nameHit && !containsFold(u.Email, s) {
			return false
		}
	}
	if len(f.Roles) > 0 && !contains(f.Roles, u.Role) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func contains[T comparable](set []T, v T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
