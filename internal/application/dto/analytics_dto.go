package dto

// ChartResponse serie de un gráfico de barras: labels[i] tiene data[i] empresas.
type ChartResponse struct {
	Success   bool     `json:"success"`
	Dimension string   `json:"dimension"`
	Labels    []string `json:"labels"`
	Data      []int64  `json:"data"`
}

// LevelCountDTO empresas por nivel.
type LevelCountDTO struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// LevelDistributionResponse respuesta de GET /api/dashboard/levels.
type LevelDistributionResponse struct {
	Success bool            `json:"success"`
	Items   []LevelCountDTO `json:"items"`
}

// TrendPointDTO punto de la serie de crecimiento; count es acumulado.
type TrendPointDTO struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// GrowthTrendResponse respuesta de GET /api/dashboard/growth.
type GrowthTrendResponse struct {
	Success bool            `json:"success"`
	Items   []TrendPointDTO `json:"items"`
}
