// Package report hands analysis outcomes to the presentation side: duration
// curves as CSV for curve rendering, classified scarcity points plus summary
// statistics as JSON for scatter rendering.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/enerscan/resload/internal/app"
	"github.com/enerscan/resload/internal/domain/series"
)

// Writer emits artifacts for one outcome into a target directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// SeriesSummary condenses one flat series for the report header.
type SeriesSummary struct {
	Mean   float64 `json:"mean"`
	Peak   float64 `json:"peak"`
	Trough float64 `json:"trough"`
	P95    float64 `json:"p95"`
}

type scarcityDoc struct {
	RunID       string             `json:"run_id"`
	Region      string             `json:"region"`
	GeneratedAt time.Time          `json:"generated_at"`
	Years       []int              `json:"years"`
	Capacities  map[string]float64 `json:"capacities"`
	TopN        int                `json:"top_n"`
	Confirmed   int                `json:"confirmed"`
	Share       float64            `json:"confirmed_share"`
	Load        SeriesSummary      `json:"load"`
	Residual    SeriesSummary      `json:"residual"`
	Points      []app.Point        `json:"points"`
}

// WriteOutcome writes <run_id>-curves.csv and <run_id>-scarcity.json and
// returns their paths.
func (w *Writer) WriteOutcome(outcome *app.Outcome) (curvesPath, scarcityPath string, err error) {
	curvesPath = filepath.Join(w.dir, outcome.RunID+"-curves.csv")
	scarcityPath = filepath.Join(w.dir, outcome.RunID+"-scarcity.json")

	records := make([][]string, 0, len(outcome.LoadCurve)+1)
	records = append(records, []string{"rank", "load", "residual_load"})
	for i := range outcome.LoadCurve {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			formatValue(outcome.LoadCurve[i]),
			formatValue(outcome.ResidualCurve[i]),
		})
	}
	if err := writeCSVAtomic(curvesPath, records); err != nil {
		return "", "", fmt.Errorf("write duration curves: %w", err)
	}

	caps := make(map[string]float64, len(outcome.Request.Capacities))
	for _, tech := range series.Renewables() {
		caps[tech.String()] = outcome.Request.Capacities[tech]
	}

	doc := scarcityDoc{
		RunID:       outcome.RunID,
		Region:      outcome.Region,
		GeneratedAt: time.Now().UTC(),
		Years:       outcome.Request.Years,
		Capacities:  caps,
		TopN:        outcome.Scarcity.N,
		Confirmed:   outcome.Scarcity.ConfirmedCount(),
		Share:       float64(outcome.Scarcity.ConfirmedCount()) / float64(outcome.Scarcity.N),
		Load:        summarize(outcome.LoadFlat),
		Residual:    summarize(outcome.ResidualFlat),
		Points:      outcome.Points,
	}
	if err := writeJSONAtomic(scarcityPath, doc); err != nil {
		return "", "", fmt.Errorf("write scarcity report: %w", err)
	}

	log.Info().
		Str("run_id", outcome.RunID).
		Str("curves", curvesPath).
		Str("scarcity", scarcityPath).
		Msg("artifacts written")

	return curvesPath, scarcityPath, nil
}

func summarize(flat []float64) SeriesSummary {
	asc := make([]float64, len(flat))
	copy(asc, flat)
	sort.Float64s(asc)

	return SeriesSummary{
		Mean:   stat.Mean(flat, nil),
		Peak:   asc[len(asc)-1],
		Trough: asc[0],
		P95:    stat.Quantile(0.95, stat.Empirical, asc, nil),
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
