package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una empresa de la red de proveedores.
// Los campos puntero son opcionales (NULL en la base de datos).
type Company struct {
	ID            int64
	Code          string // código único de la empresa
	Name          string
	Level         int // nivel (tier) dentro de la cadena de suministro
	Country       *string
	City          *string
	FoundedYear   *int
	AnnualRevenue decimal.Decimal // NUMERIC sin límite de precisión, siempre >= 0
	Employees     *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate comprueba los invariantes de la entidad: ingresos y empleados no negativos.
func (c *Company) Validate() bool {
	if c.Code == "" || c.Name == "" {
		return false
	}
	if c.AnnualRevenue.IsNegative() {
		return false
	}
	if c.Employees != nil && *c.Employees < 0 {
		return false
	}
	return true
}

// Location par país/ciudad presente en los datos (para los filtros del gráfico).
type Location struct {
	Country string
	City    string
}
