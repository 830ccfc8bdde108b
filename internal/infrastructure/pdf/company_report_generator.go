// Package pdf implementa el reporte PDF del listado de empresas con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                  │  Fecha + Generado por     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS aplicados                                           │
//	│  RESUMEN: total de empresas + ingresos                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Nivel | País | Ciudad | ...        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: filas omitidas (si el total supera la tabla)        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ ports.CompanyReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.CompanyReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GenerateCompanyReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCompanyReport(rep ports.CompanyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(rep.Title, true).
		WithAuthor(nonEmpty(rep.GeneratedBy, "company-admin"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filtersRows(rep.Filters)...)
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep.Companies)...)

	if omitted := rep.Total - int64(len(rep.Companies)); omitted > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%d empresas más no se incluyen en esta tabla.", omitted), props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + autor (der).
func headerRow(rep ports.CompanyReport, now time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Generado por: "+nonEmpty(rep.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
		),
	)
}

// filtersRows: una línea por criterio, o "Sin filtros".
func filtersRows(filters []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FILTROS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if len(filters) == 0 {
		filters = []string{"Sin filtros: todas las empresas"}
	}
	for _, f := range filters {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(f, props.Text{Size: 8, Color: colorGray, Left: 2}),
		)))
	}
	return rows
}

// summaryRow: total de empresas e ingresos del conjunto filtrado.
func summaryRow(rep ports.CompanyReport) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Empresas: %d", rep.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3,
		})),
		col.New(6).Add(text.New("Ingresos totales: $"+formatMoney(rep.TotalRevenue), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Color: colorPrimary,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla de empresas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Nivel", 1, align.Center),
		h("País", 1, align.Left),
		h("Ciudad", 2, align.Left),
		h("Fundación", 1, align.Center),
		h("Ingresos", 2, align.Right),
		h("Empleados", 1, align.Right),
	)
}

// tableRows: una fila por empresa, con fondo alterno.
func tableRows(companies []dto.CompanyResponse) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(companies))
	for i, c := range companies {
		r := row.New(6).Add(
			cell(c.Code, 1, align.Left),
			cell(c.Name, 3, align.Left),
			cell(strconv.Itoa(c.Level), 1, align.Center),
			cell(deref(c.Country), 1, align.Left),
			cell(deref(c.City), 2, align.Left),
			cell(optionalInt(c.FoundedYear), 1, align.Center),
			cell("$"+formatMoney(c.AnnualRevenue.StringFixed(0)), 2, align.Right),
			cell(optionalInt64(c.Employees), 1, align.Right),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}

func optionalInt(v *int) string {
	if v == nil {
		return "—"
	}
	return strconv.Itoa(*v)
}

func optionalInt64(v *int64) string {
	if v == nil {
		return "—"
	}
	return formatMoney(strconv.FormatInt(*v, 10))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
