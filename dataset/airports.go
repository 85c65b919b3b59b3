package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Airport struct {
	IATACode    string `json:"code"`
	Name        string `json:"airport_name"`
	City        string `json:"city"`
	CountryName string `json:"country"`
}

// DisplayName formats the airport the way the search form lists it,
// e.g. "Indira Gandhi International Airport - Delhi (DEL)".
func (a Airport) DisplayName() string {
	name := a.Name
	if a.City != "" {
		name += " - " + a.City
	}
	return fmt.Sprintf("%s (%s)", name, a.IATACode)
}

// Source yields the full airport reference table in file order.
type Source interface {
	Load(ctx context.Context) ([]Airport, error)
}

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Required CSV header names.
const (
	ColumnCountry = "Country"
	ColumnIATA    = "IATA"
	ColumnName    = "Airport name"
	ColumnCity    = "City"
)

// ─── CSV source ──────────────────────────────────────────────────────────────

// CSVSource reads the reference table from a CSV file on every Load.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Path() string {
	return s.path
}

func (s *CSVSource) Load(ctx context.Context) ([]Airport, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses airport rows from r. Columns are located by header name so
// extra columns and any column order are accepted. Rows without a country or
// IATA code are skipped.
func ReadCSV(ctx context.Context, r io.Reader) ([]Airport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty airport dataset")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	for _, col := range []string{ColumnCountry, ColumnIATA, ColumnName, ColumnCity} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var airports []Airport
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		a := Airport{
			IATACode:    strings.ToUpper(field(rec, ColumnIATA)),
			Name:        field(rec, ColumnName),
			City:        field(rec, ColumnCity),
			CountryName: field(rec, ColumnCountry),
		}
		if a.IATACode == "" || a.CountryName == "" {
			continue
		}
		airports = append(airports, a)
	}
	return airports, nil
}

// ─── Static source ───────────────────────────────────────────────────────────

// StaticSource serves an in-memory table. Load returns a copy.
type StaticSource []Airport

func (s StaticSource) Load(ctx context.Context) ([]Airport, error) {
	out := make([]Airport, len(s))
	copy(out, s)
	return out, nil
}
