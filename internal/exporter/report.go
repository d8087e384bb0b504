package exporter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	mstats "github.com/montanaflynn/stats"

	"entropyx/internal/dataprocessing"
	"entropyx/internal/entropy"
	"entropyx/internal/panel"
)

// WriteCanonicalCSV writes raw panel rows as the canonical long-format
// returns table consumed by the report step.
func (w *CSVWriter) WriteCanonicalCSV(rows []panel.Row, path string) error {
	sw, err := w.CreateStreamWriter(path, dataprocessing.CanonicalHeader)
	if err != nil {
		return err
	}

	for i, row := range rows {
		record := make([]string, 0, 2+panel.NumHorizons)
		record = append(record, row.Date.Format(panel.DateFormat), row.Symbol)
		for k := 0; k < panel.NumHorizons; k++ {
			record = append(record, strconv.FormatFloat(row.Trailing[k], 'f', 6, 64))
		}
		if err := sw.WriteRecord(record); err != nil {
			sw.Close()
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return sw.Close()
}

// WriteStatsReport writes the four key-aligned series of one statistics
// pass as a single CSV. The key column is named after the axis, and
// non-finite statistics are left empty.
func (w *CSVWriter) WriteStatsReport(rs *entropy.ResultSet, path string) error {
	keyColumn := "Date"
	if rs.Axis == panel.TimeSeries {
		keyColumn = "Symbol"
	}
	headers := []string{keyColumn, "N", "Dispersion", "Entropy", "CondEntropy", "MutualInfo"}

	set := rs.Series()
	sizes := partitionSizes(rs)

	records := make([][]string, len(set.Dispersion.Keys))
	for i, key := range set.Dispersion.Keys {
		records[i] = []string{
			key,
			strconv.Itoa(sizes[key]),
			formatStat(set.Dispersion.Values[i]),
			formatStat(set.Entropy.Values[i]),
			formatStat(set.CondEntropy.Values[i]),
			formatStat(set.MutualInfo.Values[i]),
		}
	}

	return w.WriteCSV(path, headers, records)
}

// WriteSummary writes a plain-text quartile summary of each statistic,
// skipping NaN values the way downstream plotting treats them: as missing.
func (w *CSVWriter) WriteSummary(rs *entropy.ResultSet, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "Entropy statistics summary (%s axis)\n", rs.Axis)
	fmt.Fprintf(file, "Partitions: %d, estimator failures: %d\n\n", len(rs.Stats), rs.EstimatorFailures)

	set := rs.Series()
	for _, metric := range entropy.MetricNames {
		series, _ := set.ByName(metric)
		finite := finiteValues(series.Values)
		fmt.Fprintf(file, "%s: %d/%d finite", metric, len(finite), len(series.Values))
		if len(finite) > 0 {
			q, err := mstats.Quartile(finite)
			if err == nil {
				fmt.Fprintf(file, ", q1=%.4f median=%.4f q3=%.4f", q.Q1, q.Q2, q.Q3)
			}
		}
		fmt.Fprintln(file)
	}

	return nil
}

func partitionSizes(rs *entropy.ResultSet) map[string]int {
	sizes := make(map[string]int, len(rs.Stats))
	for _, st := range rs.Stats {
		sizes[st.Key] = st.N
	}
	return sizes
}

func finiteValues(values []float64) []float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	return finite
}

// formatStat renders a statistic for CSV output; non-finite values become
// empty cells.
func formatStat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
