package query

import (
	"fmt"
	"sort"
)

// DefaultTopN límite de grupos en los gráficos (tope de visualización).
const DefaultTopN = 20

// Dimension campo categórico por el que se agrupan las empresas.
type Dimension string

const (
	DimensionLevel   Dimension = "level"
	DimensionCountry Dimension = "country"
	DimensionCity    Dimension = "city"
)

// ParseDimension valida la dimensión recibida desde la API.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionLevel, DimensionCountry, DimensionCity:
		return d, nil
	}
	return "", fmt.Errorf("dimensión %q no soportada", s)
}

// GroupCount cardinalidad de un grupo. Key nunca representa un valor nulo.
type GroupCount struct {
	Key   string
	Count int64
}

// TopGroups ordena por count descendente (empates por clave ascendente) y
// trunca a n grupos. n <= 0 no trunca.
func TopGroups(groups []GroupCount, n int) []GroupCount {
	out := make([]GroupCount, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LevelCount empresas por nivel.
type LevelCount struct {
	Level int
	Count int64
}

// YearCount empresas fundadas en un año. Year nil representa un año desconocido.
type YearCount struct {
	Year  *int
	Count int64
}

// TrendPoint punto de la serie acumulada.
type TrendPoint struct {
	Year  int
	Count int64 // total acumulado hasta Year inclusive
}

// Cumulative ordena los grupos por año ascendente y devuelve el total acumulado
// por año. Los grupos sin año se descartan.
func Cumulative(groups []YearCount) []TrendPoint {
	known := make([]YearCount, 0, len(groups))
	for _, g := range groups {
		if g.Year != nil {
			known = append(known, g)
		}
	}
	sort.SliceStable(known, func(i, j int) bool { return *known[i].Year < *known[j].Year })

	out := make([]TrendPoint, 0, len(known))
	var running int64
	for _, g := range known {
		running += g.Count
		out = append(out, TrendPoint{Year: *g.Year, Count: running})
	}
	return out
}
