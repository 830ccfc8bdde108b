package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/company-admin/internal/domain/query"
)

// Los parámetros de filtro llegan como texto; los valores mal formados se
// descartan en silencio y el resto de la consulta sigue adelante.

// PageParams parámetros de paginación comunes.
type PageParams struct {
	Page     string `query:"page"`
	PageSize string `query:"page_size"`
}

// ToPage convierte los parámetros a query.Page normalizada. defaultSize se usa
// cuando page_size falta o no es un entero.
func (p PageParams) ToPage(defaultSize int) query.Page {
	if defaultSize < 1 {
		defaultSize = query.DefaultPageSize
	}
	page := query.Page{Page: 1, PageSize: defaultSize}
	if n, ok := parseInt(p.Page); ok {
		page.Page = int(min(n, int64(query.MaxPage)))
	}
	if n, ok := parseInt(p.PageSize); ok {
		page.PageSize = int(min(n, int64(query.MaxPageSize)))
	}
	return page.Normalize()
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseIntPtr(s string) *int64 {
	n, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &n
}

func parseDecimalPtr(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// splitList separa una lista "a,b,c" descartando elementos vacíos.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitInts como splitList pero solo conserva los enteros válidos.
func splitInts(s string) []int {
	var out []int
	for _, p := range splitList(s) {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
