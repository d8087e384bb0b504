package panel

import (
	"fmt"
	"sort"
)

// maxHorizon is the longest forward shift applied during assembly. Symbols
// with fewer than maxHorizon+1 observations contribute no rows to the panel.
var maxHorizon = Horizons[NumHorizons-1]

// Assemble builds an analysis-ready panel from raw long-format rows.
//
// Rows are sorted by (symbol, date). For each horizon H the trailing-H
// return is shifted H rows forward within the symbol's ordered history and
// attached as the forward-looking target at the earlier date. Rows for
// which any shifted value falls past the end of the symbol's history are
// dropped, so every observation in the returned panel has all past and
// future horizons populated.
//
// Duplicate (symbol, date) pairs are an input error: the caller is expected
// to have deduplicated the source data, and silently keeping one of the two
// would make the shift alignment ambiguous.
func Assemble(rows []Row) (Panel, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to assemble")
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Symbol != sorted[j].Symbol {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Symbol == sorted[i-1].Symbol && sorted[i].Date.Equal(sorted[i-1].Date) {
			return nil, fmt.Errorf("duplicate observation for %s on %s",
				sorted[i].Symbol, sorted[i].Date.Format(DateFormat))
		}
	}

	var pnl Panel
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Symbol == sorted[start].Symbol {
			end++
		}
		pnl = append(pnl, shiftSymbol(sorted[start:end])...)
		start = end
	}

	return pnl, nil
}

// shiftSymbol attaches forward targets within a single symbol's sorted
// history and drops rows without a complete set of shifted values.
func shiftSymbol(history []Row) []Observation {
	if len(history) <= maxHorizon {
		return nil
	}

	// Only the first len-maxHorizon rows have every shifted value available.
	out := make([]Observation, 0, len(history)-maxHorizon)
	for i := 0; i+maxHorizon < len(history); i++ {
		obs := Observation{
			Symbol: history[i].Symbol,
			Date:   history[i].Date,
			Past:   history[i].Trailing,
		}
		for k, h := range Horizons {
			obs.Future[k] = history[i+h].Trailing[k]
		}
		out = append(out, obs)
	}
	return out
}
