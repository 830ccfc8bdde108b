package query

import "math"

// Valores por defecto de paginación.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage página máxima: (MaxPage-1)*MaxPageSize cabe en int.
	MaxPage = math.MaxInt / MaxPageSize
)

// Page paginación 1-based.
type Page struct {
	Page     int
	PageSize int
}

// Normalize aplica los límites: página < 1 pasa a 1 y se acota a MaxPage,
// tamaño < 1 pasa a 1 y se acota a MaxPageSize.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset devuelve (page-1)*pageSize sobre la página normalizada.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit devuelve el tamaño de página normalizado.
func (p Page) Limit() int {
	return p.Normalize().PageSize
}

// Slice aplica la ventana [offset, offset+limit) a una lista ya ordenada.
// Devuelve un slice vacío (no nil) si la página queda fuera del rango.
func Slice[T any](items []T, p Page) []T {
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := off + p.Limit()
	if end < off || end > len(items) {
		end = len(items)
	}
	return items[off:end]
}
