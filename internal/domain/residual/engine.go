// Package residual computes the flattened load and residual load vectors
// for a year selection and a capacity assumption. The per-index computation
// is pure and element-wise, so results do not depend on how a driver
// schedules calls.
package residual

import (
	"gonum.org/v1/gonum/floats"

	"github.com/enerscan/resload/internal/domain/series"
	"github.com/enerscan/resload/internal/errs"
)

// Capacity assigns an installed capacity to each renewable technology, in
// the same units as the normalized renewable values (GW). Technologies
// absent from the map contribute nothing to residual load; that default is
// a documented design choice, not an error.
type Capacity map[series.Technology]float64

// Validate rejects negative capacities and entries for non-renewable
// technologies.
func (c Capacity) Validate() error {
	for tech, installed := range c {
		if !isRenewable(tech) {
			return &errs.InvalidParameterError{
				Parameter: "capacities",
				Reason:    tech.String() + " is not a renewable technology",
			}
		}
		if installed < 0 {
			return &errs.InvalidParameterError{
				Parameter: "capacities",
				Reason:    "negative capacity for " + tech.String(),
			}
		}
	}
	return nil
}

func isRenewable(tech series.Technology) bool {
	for _, r := range series.Renewables() {
		if tech == r {
			return true
		}
	}
	return false
}

// Engine derives flattened load and residual load vectors from one
// region's store.
type Engine struct {
	store *series.Store
}

func NewEngine(store *series.Store) *Engine {
	return &Engine{store: store}
}

// ComputeResidualLoad flattens the load series across the selected years in
// the caller-given order and subtracts capacity-scaled renewable generation:
//
//	residual[i] = load[i] - Σ capacity[tech] * value[tech][i]
//
// summed over solar, wind offshore, wind onshore in that fixed order.
// Residual load may go negative when installed capacity and availability
// exceed load; that is meaningful oversupply and is never clamped.
func (e *Engine) ComputeResidualLoad(years []int, caps Capacity) (loadFlat, residualFlat []float64, err error) {
	if len(years) == 0 {
		return nil, nil, &errs.InvalidParameterError{
			Parameter: "years",
			Reason:    "year selection is empty",
		}
	}
	if err := caps.Validate(); err != nil {
		return nil, nil, err
	}

	n := len(years) * series.PeriodsPerYear
	loadFlat = make([]float64, 0, n)
	residualFlat = make([]float64, n)

	for _, year := range years {
		col, err := e.store.Column(series.Load, year)
		if err != nil {
			return nil, nil, err
		}
		loadFlat = append(loadFlat, col...)
	}

	copy(residualFlat, loadFlat)
	for _, tech := range series.Renewables() {
		installed := caps[tech]
		if installed == 0 {
			continue
		}
		offset := 0
		for _, year := range years {
			col, err := e.store.Column(tech, year)
			if err != nil {
				return nil, nil, err
			}
			floats.AddScaled(residualFlat[offset:offset+series.PeriodsPerYear], -installed, col)
			offset += series.PeriodsPerYear
		}
	}

	return loadFlat, residualFlat, nil
}
