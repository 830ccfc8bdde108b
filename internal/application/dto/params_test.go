package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/domain/query"
)

func TestPageParams_ToPage(t *testing.T) {
	tests := []struct {
		name string
		in   PageParams
		want query.Page
	}{
		{"sin parámetros", PageParams{}, query.Page{Page: 1, PageSize: 25}},
		{"válidos", PageParams{Page: "3", PageSize: "50"}, query.Page{Page: 3, PageSize: 50}},
		{"mal formados", PageParams{Page: "x", PageSize: "1.5"}, query.Page{Page: 1, PageSize: 25}},
		{"no positivos", PageParams{Page: "-2", PageSize: "0"}, query.Page{Page: 1, PageSize: 1}},
		{"tamaño excesivo", PageParams{PageSize: "10000"}, query.Page{Page: 1, PageSize: query.MaxPageSize}},
		{"página enorme", PageParams{Page: "922337203685477581", PageSize: "100"}, query.Page{Page: query.MaxPage, PageSize: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ToPage(25))
		})
	}
	assert.Equal(t, query.DefaultPageSize, PageParams{}.ToPage(0).PageSize)
	assert.GreaterOrEqual(t, PageParams{Page: "922337203685477581", PageSize: "100"}.ToPage(10).Offset(), 0)
}

func TestCompanyQueryParams_ToFilter(t *testing.T) {
	f := CompanyQueryParams{
		Search:           "acme",
		Levels:           "1, 2,x,,3",
		Countries:        "CO, MX ,",
		FoundedYearMin:   "1990",
		FoundedYearMax:   "dos mil",
		AnnualRevenueMin: "125000000000000000000",
		AnnualRevenueMax: "abc",
		EmployeesMax:     " 50 ",
	}.ToFilter()

	assert.Equal(t, "acme", f.Search)
	assert.Equal(t, []int{1, 2, 3}, f.Levels)
	assert.Equal(t, []string{"CO", "MX"}, f.Countries)
	assert.Nil(t, f.Cities)
	require.NotNil(t, f.FoundedYear.Min)
	assert.Equal(t, int64(1990), *f.FoundedYear.Min)
	assert.Nil(t, f.FoundedYear.Max)
	require.NotNil(t, f.AnnualRevenue.Min)
	assert.Equal(t, "125000000000000000000", f.AnnualRevenue.Min.String())
	assert.Nil(t, f.AnnualRevenue.Max)
	assert.Equal(t, int64(50), *f.Employees.Max)
}

func TestCompanyQueryParams_VaciosNoFiltran(t *testing.T) {
	f := CompanyQueryParams{Levels: " , ", Cities: ""}.ToFilter()
	assert.True(t, f.Empty())
}

func TestUserQueryParams_ToFilter(t *testing.T) {
	f := UserQueryParams{Search: "ana", Roles: "Admin,User"}.ToFilter()
	assert.Equal(t, query.UserFilter{Search: "ana", Roles: []string{"Admin", "User"}}, f)
}
