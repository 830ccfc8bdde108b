// seed genera un script SQL para poblar la tabla companies a partir de un CSV
// con columnas code,name,level,country,city,founded_year,annual_revenue,employees.
//
// Uso: go run ./cmd/seed --csv companies.csv [--latin1] [--out ruta.sql]
// Por defecto escribe internal/infrastructure/postgres/migrations/003_seed_companies.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var cli struct {
	CSV    string `help:"CSV de empresas con cabecera." type:"existingfile" required:""`
	Out    string `help:"Archivo SQL de salida (relativo al módulo si no es absoluto)." default:"internal/infrastructure/postgres/migrations/003_seed_companies.sql"`
	Latin1 bool   `help:"El CSV está codificado en ISO-8859-1."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("seed"),
		kong.Description("Genera el SQL de carga de empresas desde un CSV."))
	ctx.FatalIfErrorf(run())
}

func run() error {
	f, err := os.Open(cli.CSV)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if cli.Latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	rows, skipped, err := readCompanies(in)
	if err != nil {
		return err
	}

	outPath := cli.Out
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(findModuleRoot(), outPath)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("crear archivo: %w", err)
	}
	defer out.Close()

	if err := writeSQL(out, rows, filepath.Base(cli.CSV)); err != nil {
		return fmt.Errorf("escribir SQL: %w", err)
	}

	fmt.Printf("Generado %s: %d empresas, %d filas omitidas\n", outPath, len(rows), skipped)
	return nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
