package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// columnas esperadas en la cabecera (el orden puede variar).
var columns = []string{"code", "name", "level", "country", "city", "founded_year", "annual_revenue", "employees"}

type companyRow struct {
	code, name    string
	level         int
	country, city *string
	foundedYear   *int
	revenue       decimal.Decimal
	employees     *int64
}

// readCompanies lee el CSV y devuelve las filas válidas y cuántas se omitieron.
// Una fila se omite si le falta code/name, o si level, revenue o employees no son válidos.
func readCompanies(r io.Reader) ([]companyRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range []string{"code", "name"} {
		if _, ok := idx[c]; !ok {
			return nil, 0, fmt.Errorf("falta la columna %q", c)
		}
	}

	var (
		rows    []companyRow
		skipped int
		seen    = map[string]bool{}
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, 0, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row, ok := parseRow(get)
		if !ok || seen[row.code] {
			skipped++
			continue
		}
		seen[row.code] = true
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRow(get func(string) string) (companyRow, bool) {
	row := companyRow{code: get("code"), name: get("name")}
	if row.code == "" || row.name == "" {
		return row, false
	}
	if s := get("level"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return row, false
		}
		row.level = n
	}
	row.country = optional(get("country"))
	row.city = optional(get("city"))
	if s := get("founded_year"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			row.foundedYear = &n
		}
	}
	if s := get("annual_revenue"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return row, false
		}
		row.revenue = d.Truncate(0)
	}
	if s := get("employees"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return row, false
		}
		row.employees = &n
	}
	return row, true
}

// writeSQL escribe un INSERT idempotente por empresa.
func writeSQL(w io.Writer, rows []companyRow, source string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- Empresas generadas desde %s\n\n", source)
	for _, r := range rows {
		fmt.Fprintf(bw, "INSERT INTO companies (code, name, level, country, city, founded_year, annual_revenue, employees)\n")
		fmt.Fprintf(bw, "VALUES (%s, %s, %d, %s, %s, %s, %s, %s)\n",
			quote(r.code), quote(r.name), r.level,
			quoteOpt(r.country), quoteOpt(r.city), intOpt(r.foundedYear),
			r.revenue.String(), int64Opt(r.employees))
		bw.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, level = EXCLUDED.level,\n")
		bw.WriteString("  country = EXCLUDED.country, city = EXCLUDED.city, founded_year = EXCLUDED.founded_year,\n")
		bw.WriteString("  annual_revenue = EXCLUDED.annual_revenue, employees = EXCLUDED.employees, updated_at = NOW();\n")
	}
	return bw.Flush()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteOpt(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

func intOpt(n *int) string {
	if n == nil {
		return "NULL"
	}
	return strconv.Itoa(*n)
}

func int64Opt(n *int64) string {
	if n == nil {
		return "NULL"
	}
	return strconv.FormatInt(*n, 10)
}
