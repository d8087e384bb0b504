package entropy

import (
	"encoding/json"
	"math"
)

// JSON cannot represent NaN or infinities, so the API renders non-finite
// statistics as null. The CSV exporter does the same with empty cells.

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON renders non-finite values as null.
func (s Series) MarshalJSON() ([]byte, error) {
	values := make([]*float64, len(s.Values))
	for i, v := range s.Values {
		values[i] = nullable(v)
	}
	return json.Marshal(struct {
		Keys   []string   `json:"keys"`
		Values []*float64 `json:"values"`
	}{Keys: s.Keys, Values: values})
}

// MarshalJSON renders non-finite statistics as null.
func (ps PartitionStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		N           int      `json:"n"`
		Dispersion  *float64 `json:"dispersion"`
		Entropy     *float64 `json:"entropy"`
		CondEntropy *float64 `json:"cond_entropy"`
		MutualInfo  *float64 `json:"mutual_info"`
	}{
		Key:         ps.Key,
		N:           ps.N,
		Dispersion:  nullable(ps.Dispersion),
		Entropy:     nullable(ps.Entropy),
		CondEntropy: nullable(ps.CondEntropy),
		MutualInfo:  nullable(ps.MutualInfo),
	})
}

// MarshalJSON renders the axis by name.
func (rs ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Axis              string           `json:"axis"`
		Stats             []PartitionStats `json:"stats"`
		EstimatorFailures int              `json:"estimator_failures"`
	}{
		Axis:              rs.Axis.String(),
		Stats:             rs.Stats,
		EstimatorFailures: rs.EstimatorFailures,
	})
}
