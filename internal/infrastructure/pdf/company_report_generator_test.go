package pdf

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/ports"
)

func TestGenerateCompanyReport(t *testing.T) {
	country := "Colombia"
	year := 1998
	emp := int64(1250)
	companies := make([]dto.CompanyResponse, 0, 40)
	for i := 0; i < 40; i++ {
		companies = append(companies, dto.CompanyResponse{
			ID:            int64(i + 1),
			Code:          "C" + strconv.Itoa(i),
			Name:          "Empresa " + strconv.Itoa(i),
			Level:         1 + i%3,
			Country:       &country,
			FoundedYear:   &year,
			AnnualRevenue: decimal.RequireFromString("125000000000000000000"),
			Employees:     &emp,
		})
	}

	g := NewMarotoReportGenerator()
	g.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC) }

	out, err := g.GenerateCompanyReport(ports.CompanyReport{
		Title:        "Reporte de empresas",
		Filters:      []string{"Niveles: 1, 2"},
		Companies:    companies,
		Total:        120,
		TotalRevenue: "5000000000000000000000",
		GeneratedBy:  "admin@acme.co",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCompanyReport_SinFilas(t *testing.T) {
	out, err := NewMarotoReportGenerator().GenerateCompanyReport(ports.CompanyReport{
		Title:        "Reporte de empresas",
		Companies:    []dto.CompanyResponse{},
		TotalRevenue: "0",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":                     "0",
		"999":                   "999",
		"25000":                 "25.000",
		"1000000":               "1.000.000",
		"1234.56":               "1.234",
		"125000000000000000000": "125.000.000.000.000.000.000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestOptionalHelpers(t *testing.T) {
	assert.Equal(t, "—", deref(nil))
	assert.Equal(t, "—", optionalInt(nil))
	emp := int64(12000)
	assert.Equal(t, "12.000", optionalInt64(&emp))
	assert.Equal(t, "x", nonEmpty("", "x"))
}
