package entropy

import (
	"math"
	"sort"

	"entropyx/internal/panel"
)

// Series is one statistic materialized as an ordered, key-aligned series.
type Series struct {
	Keys   []string  `json:"keys"`
	Values []float64 `json:"values"`
}

// SeriesSet holds the four statistic series of one computation pass,
// sharing the same key order.
type SeriesSet struct {
	Dispersion  Series `json:"dispersion"`
	Entropy     Series `json:"entropy"`
	CondEntropy Series `json:"cond_entropy"`
	MutualInfo  Series `json:"mutual_info"`
}

// ByName returns the series for a metric name from MetricNames.
func (s SeriesSet) ByName(metric string) (Series, bool) {
	switch metric {
	case MetricDispersion:
		return s.Dispersion, true
	case MetricEntropy:
		return s.Entropy, true
	case MetricCondEntropy:
		return s.CondEntropy, true
	case MetricMutualInfo:
		return s.MutualInfo, true
	default:
		return Series{}, false
	}
}

// Series materializes the result set as four key-aligned series.
// Cross-sectional results are ordered chronologically; time-series results
// keep the stable partition order. All values pass through a final
// non-finite cleanup: infinities become NaN so downstream consumers treat
// them uniformly as missing.
func (rs *ResultSet) Series() SeriesSet {
	ordered := make([]PartitionStats, len(rs.Stats))
	copy(ordered, rs.Stats)
	if rs.Axis == panel.CrossSection {
		// Keys are ISO dates, lexicographic order is chronological.
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Key < ordered[j].Key
		})
	}

	keys := make([]string, len(ordered))
	dispersion := make([]float64, len(ordered))
	ent := make([]float64, len(ordered))
	cond := make([]float64, len(ordered))
	mi := make([]float64, len(ordered))
	for i, st := range ordered {
		keys[i] = st.Key
		dispersion[i] = st.Dispersion
		ent[i] = st.Entropy
		cond[i] = st.CondEntropy
		mi[i] = st.MutualInfo
	}

	cleanNonFinite(dispersion)
	cleanNonFinite(ent)
	cleanNonFinite(cond)
	cleanNonFinite(mi)

	return SeriesSet{
		Dispersion:  Series{Keys: keys, Values: dispersion},
		Entropy:     Series{Keys: keys, Values: ent},
		CondEntropy: Series{Keys: keys, Values: cond},
		MutualInfo:  Series{Keys: keys, Values: mi},
	}
}

// cleanNonFinite replaces infinities with NaN in place, leaving finite
// values and existing NaNs untouched.
func cleanNonFinite(values []float64) {
	for i, v := range values {
		if math.IsInf(v, 0) {
			values[i] = math.NaN()
		}
	}
}
