package report

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/infrastructure/memory"
	"github.com/jhoicas/company-admin/pkg/logger"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateCompanyReport(r ports.CompanyReport) ([]byte, error) {
	args := m.Called(r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func seedStore(t *testing.T, n int) *memory.CompanyStore {
	t.Helper()
	store := memory.NewCompanyStore()
	for i := 0; i < n; i++ {
		require.NoError(t, store.Create(context.Background(), &entity.Company{
			Code:          "C" + strconv.Itoa(i),
			Name:          "Empresa " + strconv.Itoa(i),
			Level:         1 + i%3,
			AnnualRevenue: decimal.NewFromInt(int64(i)),
		}))
	}
	return store
}

func TestGenerate_LimitaFilasYConservaTotal(t *testing.T) {
	store := seedStore(t, MaxRows+20)
	gen := new(MockGenerator)
	var captured ports.CompanyReport
	gen.On("GenerateCompanyReport", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(0).(ports.CompanyReport) }).
		Return([]byte("%PDF"), nil)

	uc := NewCompanyReportUseCase(store, gen, logger.Nop())
	uc.now = func() time.Time { return time.Date(2026, 3, 4, 15, 6, 0, 0, time.UTC) }

	pdf, name, err := uc.Generate(context.Background(), query.CompanyFilter{}, "admin@acme.co")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "empresas-20260304-1506.pdf", name)
	assert.Len(t, captured.Companies, MaxRows)
	assert.Equal(t, int64(MaxRows+20), captured.Total)
	assert.Equal(t, "C519", captured.Companies[0].Code, "mismo orden que el listado")
	assert.Equal(t, "admin@acme.co", captured.GeneratedBy)
	gen.AssertExpectations(t)
}

func TestGenerate_FiltroContradictorio(t *testing.T) {
	store := seedStore(t, 3)
	gen := new(MockGenerator)
	gen.On("GenerateCompanyReport", mock.MatchedBy(func(r ports.CompanyReport) bool {
		return r.Total == 0 && len(r.Companies) == 0 && r.TotalRevenue == "0"
	})).Return([]byte("%PDF"), nil)

	lo, hi := int64(10), int64(1)
	uc := NewCompanyReportUseCase(store, gen, logger.Nop())
	_, _, err := uc.Generate(context.Background(), query.CompanyFilter{Employees: query.IntRange{Min: &lo, Max: &hi}}, "")

	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestGenerate_Errores(t *testing.T) {
	store := seedStore(t, 1)
	store.FailWith(domain.ErrStoreUnavailable)
	gen := new(MockGenerator)

	uc := NewCompanyReportUseCase(store, gen, logger.Nop())
	_, _, err := uc.Generate(context.Background(), query.CompanyFilter{}, "")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	gen.AssertNotCalled(t, "GenerateCompanyReport", mock.Anything)

	store.FailWith(nil)
	boom := errors.New("maroto")
	gen.On("GenerateCompanyReport", mock.Anything).Return(nil, boom)
	_, _, err = uc.Generate(context.Background(), query.CompanyFilter{}, "")
	assert.ErrorIs(t, err, boom)
}

func TestDescribeFilter(t *testing.T) {
	lo := decimal.NewFromInt(1000)
	year := int64(2000)
	lines := DescribeFilter(query.CompanyFilter{
		Search:        " acme ",
		Levels:        []int{1, 2},
		Countries:     []string{"CO", "MX"},
		FoundedYear:   query.IntRange{Max: &year},
		AnnualRevenue: query.DecimalRange{Min: &lo},
	})

	assert.Equal(t, []string{
		`Nombre contiene "acme"`,
		"Niveles: 1, 2",
		"Países: CO, MX",
		"Año de fundación: - a 2000",
		"Ingresos anuales: 1000 a -",
	}, lines)
	assert.Empty(t, DescribeFilter(query.CompanyFilter{}))
}
