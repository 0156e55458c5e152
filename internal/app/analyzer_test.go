package app

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enerscan/resload/internal/domain/residual"
	"github.com/enerscan/resload/internal/domain/series"
	"github.com/enerscan/resload/internal/errs"
	"github.com/enerscan/resload/internal/metrics"
)

// rampStore builds a store where load ramps linearly over the year and each
// renewable is constant, so the ranking outcome is easy to predict: without
// renewables the load peak periods are also the residual peak periods.
func rampStore(t *testing.T, years ...int) *series.Store {
	t.Helper()
	tables := make(map[series.Technology]*series.Table)
	for _, tech := range series.Technologies() {
		cols := make(map[int][]float64)
		for _, y := range years {
			col := make([]float64, series.PeriodsPerYear)
			for i := range col {
				if tech == series.Load {
					col[i] = float64(i) / 100 // peak at end of year
				} else {
					col[i] = 0.5
				}
			}
			cols[y] = col
		}
		tables[tech] = series.NewTable(tech, cols)
	}
	store, err := series.NewStore("DE", tables)
	require.NoError(t, err)
	return store
}

func TestAnalyze_EndToEnd(t *testing.T) {
	analyzer := NewAnalyzer(rampStore(t, 2015, 2016), nil)

	outcome, err := analyzer.Analyze(Request{
		Years:      []int{2015, 2016},
		Capacities: residual.Capacity{series.Solar: 10},
		TopN:       5,
	})
	require.NoError(t, err)

	wantLen := 2 * series.PeriodsPerYear
	assert.Len(t, outcome.LoadFlat, wantLen)
	assert.Len(t, outcome.ResidualFlat, wantLen)
	assert.Len(t, outcome.LoadCurve, wantLen)
	assert.Len(t, outcome.Points, 5)
	assert.NotEmpty(t, outcome.RunID)

	// Constant renewables shift every value equally, so the load peaks stay
	// the residual peaks and every scarcity step is confirmed.
	for _, p := range outcome.Points {
		assert.True(t, p.Confirmed)
		assert.InDelta(t, p.Load-10*0.5, p.Residual, 1e-9)
	}

	// Curves are descending.
	for i := 1; i < len(outcome.LoadCurve); i++ {
		assert.GreaterOrEqual(t, outcome.LoadCurve[i-1], outcome.LoadCurve[i])
	}
}

func TestAnalyze_MemoizationHitsCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	analyzer := NewAnalyzer(rampStore(t, 2015), metrics.New(reg))
	req := Request{Years: []int{2015}, Capacities: residual.Capacity{series.WindOnshore: 3}, TopN: 10}

	first, err := analyzer.Analyze(req)
	require.NoError(t, err)
	second, err := analyzer.Analyze(req)
	require.NoError(t, err)

	assert.Same(t, first, second, "identical request must be served from cache")

	hits, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range hits {
		if f.GetName() == "resload_analyze_cache_hits_total" {
			found = true
			assert.Equal(t, 1.0, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestAnalyze_DistinctRequestsMiss(t *testing.T) {
	analyzer := NewAnalyzer(rampStore(t, 2015), nil)

	a, err := analyzer.Analyze(Request{Years: []int{2015}, TopN: 5})
	require.NoError(t, err)
	b, err := analyzer.Analyze(Request{Years: []int{2015}, TopN: 6})
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	c, err := analyzer.Analyze(Request{Years: []int{2015}, Capacities: residual.Capacity{series.Solar: 1}, TopN: 5})
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestAnalyze_PropagatesParameterErrors(t *testing.T) {
	set := metrics.New(prometheus.NewRegistry())
	analyzer := NewAnalyzer(rampStore(t, 2015), set)

	var invalid *errs.InvalidParameterError
	_, err := analyzer.Analyze(Request{Years: []int{2015}, TopN: 0})
	require.ErrorAs(t, err, &invalid)

	_, err = analyzer.Analyze(Request{Years: nil, TopN: 5})
	require.ErrorAs(t, err, &invalid)

	var missing *errs.MissingDataError
	_, err = analyzer.Analyze(Request{Years: []int{1999}, TopN: 5})
	require.ErrorAs(t, err, &missing)

	assert.Equal(t, 3.0, testutil.ToFloat64(set.Failures.WithLabelValues("DE")))
}
