package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"entropyx/internal/entropy"
	"entropyx/internal/panel"
)

// StatsReportPath returns the stable file name of one axis' statistics
// report inside a reports directory.
func StatsReportPath(reportsDir string, axis panel.Axis) string {
	return filepath.Join(reportsDir, fmt.Sprintf("entropy_stats_%s.csv", axis))
}

// LoadStatsReport reads a statistics report CSV back into a ResultSet.
// Empty statistic cells become NaN, matching how the exporter renders
// non-finite values.
func LoadStatsReport(path string, axis panel.Axis) (*entropy.ResultSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stats report: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read report header: %w", err)
	}
	if len(header) < 6 {
		return nil, fmt.Errorf("unexpected report header: %v", header)
	}

	rs := &entropy.ResultSet{Axis: axis}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: short record", line)
		}

		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse N: %w", line, err)
		}

		rs.Stats = append(rs.Stats, entropy.PartitionStats{
			Key:         record[0],
			N:           n,
			Dispersion:  parseStat(record[2]),
			Entropy:     parseStat(record[3]),
			CondEntropy: parseStat(record[4]),
			MutualInfo:  parseStat(record[5]),
		})
	}

	if len(rs.Stats) == 0 {
		return nil, fmt.Errorf("empty stats report %s", path)
	}
	return rs, nil
}

// parseStat converts a report cell back to a float; empty cells encode
// non-finite values and become NaN.
func parseStat(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
