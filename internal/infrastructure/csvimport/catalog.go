// Package csvimport lee el catálogo inicial de libros desde un CSV.
// Acepta UTF-8 (con o sin BOM) y Latin-1, el formato que exportan las hojas de cálculo antiguas.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrEmptyFile     = errors.New("csvimport: archivo vacío")
	ErrMissingHeader = errors.New("csvimport: faltan columnas obligatorias")
)

// Columnas reconocidas; stock_quantity es opcional.
const (
	ColISBN        = "isbn"
	ColTitle       = "title"
	ColAuthor      = "author"
	ColPublisher   = "publisher"
	ColRetailPrice = "retail_price"
	ColStock       = "stock_quantity"
)

var requiredColumns = []string{ColISBN, ColTitle, ColAuthor, ColPublisher, ColRetailPrice}

// BookRow fila válida del catálogo.
type BookRow struct {
	Line          int
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	RetailPrice   decimal.Decimal
	StockQuantity int
}

// RowError fila descartada con su número de línea (la cabecera es la línea 1).
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Result filas válidas y errores por fila. Un error por fila no detiene la lectura.
type Result struct {
	Rows   []BookRow
	Errors []RowError
	Latin1 bool // el archivo no era UTF-8 y se decodificó como ISO-8859-1
}

// Option configura el lector.
type Option func(*reader)

// WithDelimiter cambia el separador (por defecto ',').
func WithDelimiter(d rune) Option {
	return func(r *reader) { r.delimiter = d }
}

type reader struct {
	delimiter rune
}

// ReadCatalog lee el CSV completo. Los ISBN repetidos dentro del archivo se reportan como error de fila.
func ReadCatalog(in io.Reader, opts ...Option) (*Result, error) {
	cfg := reader{delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("csvimport: leer: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyFile
	}

	res := &Result{}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("csvimport: decodificar latin-1: %w", err)
		}
		res.Latin1 = true
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = cfg.delimiter
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csvimport: cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	seen := make(map[string]int)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Err: err})
			continue
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if isBlank(record) {
			continue
		}
		row, err := parseRow(line, get)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Err: err})
			continue
		}
		if first, dup := seen[row.ISBN]; dup {
			res.Errors = append(res.Errors, RowError{Line: line, Err: fmt.Errorf("isbn %s repetido (línea %d)", row.ISBN, first)})
			continue
		}
		seen[row.ISBN] = line
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func parseRow(line int, get func(string) string) (BookRow, error) {
	row := BookRow{
		Line:      line,
		ISBN:      get(ColISBN),
		Title:     get(ColTitle),
		Author:    get(ColAuthor),
		Publisher: get(ColPublisher),
	}
	for _, f := range []struct{ name, val string }{
		{ColISBN, row.ISBN}, {ColTitle, row.Title}, {ColAuthor, row.Author}, {ColPublisher, row.Publisher},
	} {
		if f.val == "" {
			return row, fmt.Errorf("%s vacío", f.name)
		}
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(get(ColRetailPrice), ",", "."))
	if err != nil {
		return row, fmt.Errorf("retail_price inválido %q", get(ColRetailPrice))
	}
	if !price.IsPositive() {
		return row, fmt.Errorf("retail_price debe ser mayor que 0")
	}
	row.RetailPrice = price
	if s := get(ColStock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return row, fmt.Errorf("stock_quantity inválido %q", s)
		}
		row.StockQuantity = n
	}
	return row, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
