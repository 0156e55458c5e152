// Package series holds the per-region, per-technology yearly time series
// the rest of the pipeline computes on. A Store is built once per region
// from ingested data, validated eagerly, and read-only afterwards, so it is
// safe to share across concurrent computation requests without locking.
package series

import (
	"math"
	"sort"

	"github.com/enerscan/resload/internal/errs"
)

// Table is one technology's series for a region: one column of
// PeriodsPerYear values per available weather/load year, already unit
// normalized by the ingestion layer.
type Table struct {
	Tech    Technology
	years   []int             // ascending
	columns map[int][]float64 // year -> values, one per period
}

// NewTable builds a table from per-year columns. Year order is normalized
// to ascending; column contents are not validated here, the Store
// constructor owns the integrity checks.
func NewTable(tech Technology, columns map[int][]float64) *Table {
	years := make([]int, 0, len(columns))
	for y := range columns {
		years = append(years, y)
	}
	sort.Ints(years)
	return &Table{Tech: tech, years: years, columns: columns}
}

// Years returns the table's year identifiers in ascending order.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Column returns the values for one year, or false if the year is absent.
// The returned slice is the table's own backing array; callers must not
// mutate it.
func (t *Table) Column(year int) ([]float64, bool) {
	col, ok := t.columns[year]
	return col, ok
}

// Store is the validated set of four technology tables for one region.
type Store struct {
	Region string
	tables map[Technology]*Table
}

// NewStore validates the ingested tables and wraps them into an immutable
// store. Every technology must be present, every table must carry the same
// year set and exactly PeriodsPerYear values per year, and every value must
// be finite and non-negative. The first violation found is returned as a
// *errs.DataIntegrityError naming the offending technology, year and period.
func NewStore(region string, tables map[Technology]*Table) (*Store, error) {
	for _, tech := range Technologies() {
		if _, ok := tables[tech]; !ok {
			return nil, &errs.DataIntegrityError{
				Technology: tech.String(),
				Reason:     "technology table missing",
			}
		}
	}

	refYears := tables[Load].Years()
	if len(refYears) == 0 {
		return nil, &errs.DataIntegrityError{
			Technology: Load.String(),
			Reason:     "table has no year columns",
		}
	}

	for _, tech := range Technologies() {
		tbl := tables[tech]
		if !equalYears(tbl.Years(), refYears) {
			return nil, &errs.DataIntegrityError{
				Technology: tech.String(),
				Reason:     "year set differs from load table",
			}
		}
		for _, year := range refYears {
			col, _ := tbl.Column(year)
			if len(col) != PeriodsPerYear {
				return nil, &errs.DataIntegrityError{
					Technology: tech.String(),
					Year:       year,
					Reason:     "period count is not 8760",
				}
			}
			for i, v := range col {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					return nil, &errs.DataIntegrityError{
						Technology: tech.String(),
						Year:       year,
						Period:     i + 1,
						Value:      v,
						Reason:     "non-finite or negative value",
					}
				}
			}
		}
	}

	return &Store{Region: region, tables: tables}, nil
}

// Years returns the store's common year identifiers in ascending order.
func (s *Store) Years() []int {
	return s.tables[Load].Years()
}

// HasYear reports whether a year is available in the store.
func (s *Store) HasYear(year int) bool {
	_, ok := s.tables[Load].Column(year)
	return ok
}

// Column returns one technology's values for one year, failing with a
// *errs.MissingDataError when the column is absent.
func (s *Store) Column(tech Technology, year int) ([]float64, error) {
	tbl, ok := s.tables[tech]
	if !ok {
		return nil, &errs.MissingDataError{Technology: tech.String(), Year: year}
	}
	col, ok := tbl.Column(year)
	if !ok {
		return nil, &errs.MissingDataError{Technology: tech.String(), Year: year}
	}
	return col, nil
}

func equalYears(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
