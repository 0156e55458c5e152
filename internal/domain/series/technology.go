package series

// Technology identifies one of the fixed per-region time series: the demand
// series (Load) or one of the three renewable supply series.
type Technology int

const (
	Load Technology = iota
	Solar
	WindOffshore
	WindOnshore
)

// PeriodsPerYear is the fixed number of hourly periods every yearly column
// spans. Source files carry one row per period, 1..8760.
const PeriodsPerYear = 8760

func (t Technology) String() string {
	switch t {
	case Load:
		return "load"
	case Solar:
		return "solar"
	case WindOffshore:
		return "wind_offshore"
	case WindOnshore:
		return "wind_onshore"
	default:
		return "unknown"
	}
}

// ParseTechnology maps a config/file identifier back to its Technology.
func ParseTechnology(s string) (Technology, bool) {
	for _, t := range Technologies() {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Technologies returns all technologies in their canonical order.
func Technologies() []Technology {
	return []Technology{Load, Solar, WindOffshore, WindOnshore}
}

// Renewables returns the renewable technologies in the fixed summation
// order used everywhere residual load is computed: solar, then wind
// offshore, then wind onshore. Keeping this order explicit makes the
// floating-point sum and every downstream ranking reproducible.
func Renewables() []Technology {
	return []Technology{Solar, WindOffshore, WindOnshore}
}
