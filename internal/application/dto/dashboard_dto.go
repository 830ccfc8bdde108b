package dto

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
//
// total_revenue es la suma convertida a float64 para mostrar; total_revenue_exact
// conserva la suma sin pérdida de precisión.
type DashboardStatsResponse struct {
	Success           bool    `json:"success"`
	TotalCompanies    int64   `json:"total_companies"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalRevenueExact string  `json:"total_revenue_exact"`
	TotalEmployees    int64   `json:"total_employees"`
	UniqueCountries   int     `json:"unique_countries"`
}
