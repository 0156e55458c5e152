// Package ingest reads the per-region, per-technology source files and
// produces validated series stores. Delimiter, decimal-mark convention and
// normalization divisors all come from configuration; nothing about the
// source locale is hard-coded.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/enerscan/resload/internal/domain/series"
)

// Options describes the field and decimal conventions of the source files.
type Options struct {
	Delimiter    rune // field separator, e.g. ';' for the common EU export format
	DecimalComma bool // values use ',' as decimal mark
}

// DefaultOptions matches the semicolon-delimited, decimal-comma exports the
// tool was originally built around.
func DefaultOptions() Options {
	return Options{Delimiter: ';', DecimalComma: true}
}

// Normalization maps each technology to the divisor applied to its raw
// values: load MW -> GW, renewables percent -> availability factor.
type Normalization map[series.Technology]float64

// DefaultNormalization returns the standard divisors: 1000 for load, 100
// for each renewable.
func DefaultNormalization() Normalization {
	return Normalization{
		series.Load:         1000,
		series.Solar:        100,
		series.WindOffshore: 100,
		series.WindOnshore:  100,
	}
}

// Loader reads technology files from <root>/<region>/<technology>.csv.
// Each file has a header row naming the year columns and one row per
// period, 8760 rows in total.
type Loader struct {
	root     string
	opts     Options
	divisors Normalization
}

// NewLoader builds a loader rooted at the given data directory. The root is
// an explicit value so drivers can point different loaders at different
// trees without process-wide state.
func NewLoader(root string, opts Options, divisors Normalization) *Loader {
	if divisors == nil {
		divisors = DefaultNormalization()
	}
	return &Loader{root: root, opts: opts, divisors: divisors}
}

// LoadRegion reads all four technology files for a region and returns the
// validated store.
func (l *Loader) LoadRegion(region string) (*series.Store, error) {
	tables := make(map[series.Technology]*series.Table, len(series.Technologies()))
	for _, tech := range series.Technologies() {
		path := filepath.Join(l.root, region, tech.String()+".csv")
		table, err := l.loadTable(tech, path)
		if err != nil {
			return nil, fmt.Errorf("load %s for region %s: %w", tech, region, err)
		}
		tables[tech] = table
	}

	store, err := series.NewStore(region, tables)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("region", region).Ints("years", store.Years()).Msg("series store loaded")
	return store, nil
}

func (l *Loader) loadTable(tech series.Technology, path string) (*series.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.opts.Delimiter

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header has no year columns")
	}
	years := make([]int, 0, len(header)-1)
	for _, field := range header[1:] {
		year, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("header column %q is not a year: %w", field, err)
		}
		years = append(years, year)
	}

	columns := make(map[int][]float64, len(years))
	for _, y := range years {
		columns[y] = make([]float64, 0, series.PeriodsPerYear)
	}

	divisor := l.divisors[tech]
	if divisor == 0 {
		divisor = 1
	}

	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		row++
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d: %d fields, expected %d", row, len(record), len(header))
		}
		for i, year := range years {
			v, err := l.parseValue(record[i+1])
			if err != nil {
				return nil, fmt.Errorf("row %d year %d: %w", row, year, err)
			}
			columns[year] = append(columns[year], v/divisor)
		}
	}
	if row != series.PeriodsPerYear {
		return nil, fmt.Errorf("%d data rows, expected %d", row, series.PeriodsPerYear)
	}

	return series.NewTable(tech, columns), nil
}

func (l *Loader) parseValue(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if l.opts.DecimalComma {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
