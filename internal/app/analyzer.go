// Package app orchestrates one analysis request: flatten the selected
// years, net out renewables, build both duration curves, and classify the
// scarcity steps. Every call is stateless apart from an optional
// memoization cache that never changes observable results.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/enerscan/resload/internal/domain/duration"
	"github.com/enerscan/resload/internal/domain/residual"
	"github.com/enerscan/resload/internal/domain/scarcity"
	"github.com/enerscan/resload/internal/domain/series"
	"github.com/enerscan/resload/internal/metrics"
)

// Request carries the per-computation parameters: which years to flatten,
// the assumed capacity mix, and how many scarcity steps to rank.
type Request struct {
	Years      []int
	Capacities residual.Capacity
	TopN       int
}

// Point is one classified load scarcity step, shaped for scatter rendering.
type Point struct {
	Index     int     `json:"index"`
	Load      float64 `json:"load"`
	Residual  float64 `json:"residual"`
	Confirmed bool    `json:"confirmed"`
}

// Outcome is the full result of one analysis request.
type Outcome struct {
	RunID         string
	Region        string
	Request       Request
	LoadFlat      []float64
	ResidualFlat  []float64
	LoadCurve     []float64
	ResidualCurve []float64
	Scarcity      *scarcity.Result
	Points        []Point
}

// Analyzer runs analysis requests against one region's store. The store is
// read-only, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	store   *series.Store
	engine  *residual.Engine
	metrics *metrics.Set

	mu    sync.RWMutex
	cache map[string]*Outcome
}

// NewAnalyzer wraps a validated store. A nil metrics set disables nothing,
// it just counts into a private registry.
func NewAnalyzer(store *series.Store, set *metrics.Set) *Analyzer {
	if set == nil {
		set = metrics.New(nil)
	}
	return &Analyzer{
		store:   store,
		engine:  residual.NewEngine(store),
		metrics: set,
		cache:   make(map[string]*Outcome),
	}
}

// Analyze computes load and residual flat series, both duration curves, and
// the scarcity classification for the request. Identical requests are
// served from the memoization cache.
func (a *Analyzer) Analyze(req Request) (*Outcome, error) {
	a.metrics.Requests.WithLabelValues(a.store.Region).Inc()
	start := time.Now()

	key := cacheKey(a.store.Region, req)
	a.mu.RLock()
	cached, ok := a.cache[key]
	a.mu.RUnlock()
	if ok {
		a.metrics.CacheHits.Inc()
		return cached, nil
	}

	outcome, err := a.compute(req)
	if err != nil {
		a.metrics.Failures.WithLabelValues(a.store.Region).Inc()
		return nil, err
	}
	a.metrics.Duration.Observe(time.Since(start).Seconds())

	a.mu.Lock()
	a.cache[key] = outcome
	a.mu.Unlock()

	log.Info().
		Str("run_id", outcome.RunID).
		Str("region", outcome.Region).
		Ints("years", req.Years).
		Int("top_n", req.TopN).
		Int("confirmed", outcome.Scarcity.ConfirmedCount()).
		Msg("scarcity analysis complete")

	return outcome, nil
}

func (a *Analyzer) compute(req Request) (*Outcome, error) {
	loadFlat, residualFlat, err := a.engine.ComputeResidualLoad(req.Years, req.Capacities)
	if err != nil {
		return nil, err
	}

	result, err := scarcity.Classify(loadFlat, residualFlat, req.TopN)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(result.LoadRank))
	for i, idx := range result.LoadRank {
		points[i] = Point{
			Index:     idx,
			Load:      loadFlat[idx],
			Residual:  residualFlat[idx],
			Confirmed: result.Confirmed[i],
		}
	}

	return &Outcome{
		RunID:         uuid.NewString(),
		Region:        a.store.Region,
		Request:       req,
		LoadFlat:      loadFlat,
		ResidualFlat:  residualFlat,
		LoadCurve:     duration.Curve(loadFlat),
		ResidualCurve: duration.Curve(residualFlat),
		Scarcity:      result,
		Points:        points,
	}, nil
}

// cacheKey serializes the request with renewables in their fixed order so
// equal requests always map to the same key.
func cacheKey(region string, req Request) string {
	years := fmt.Sprint(req.Years)
	caps := make([]string, 0, len(req.Capacities))
	for _, tech := range series.Renewables() {
		caps = append(caps, fmt.Sprintf("%s=%g", tech, req.Capacities[tech]))
	}
	return fmt.Sprintf("%s|%s|%v|%d", region, years, caps, req.TopN)
}
