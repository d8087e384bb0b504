package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"entropyx/internal/panel"
)

// Canonical CSV column names, in file order. Ret columns follow
// panel.Horizons: shortest trailing horizon first.
var CanonicalHeader = []string{"Date", "Symbol", "Ret1", "Ret3", "Ret6", "Ret12"}

// LoadReturnsCSV reads the canonical long-format returns CSV into raw panel
// rows. Structural problems are fatal and reported once: a missing required
// column or an unparseable date aborts the load. Rows with empty or
// malformed numeric cells are dropped with a warning, mirroring how the
// source datasets mark non-observations.
func LoadReturnsCSV(path string, logger *slog.Logger) ([]panel.Row, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open returns CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []panel.Row
	dropped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse(panel.DateFormat, strings.TrimSpace(record[cols.date]))
		if err != nil {
			return nil, fmt.Errorf("line %d: unparseable date %q: %w", line, record[cols.date], err)
		}

		symbol := strings.TrimSpace(strings.ToUpper(record[cols.symbol]))
		if symbol == "" {
			return nil, fmt.Errorf("line %d: empty symbol", line)
		}

		row := panel.Row{Symbol: symbol, Date: date}
		ok := true
		for k, idx := range cols.returns {
			v, err := parseReturn(record[idx])
			if err != nil {
				logger.Warn("dropping row with malformed return cell",
					"line", line, "symbol", symbol, "column", CanonicalHeader[2+k], "error", err)
				ok = false
				break
			}
			row.Trailing[k] = v
		}
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", path)
	}

	logger.Info("loaded returns CSV",
		"path", path,
		"rows", len(rows),
		"dropped", dropped,
	)
	return rows, nil
}

type columnIndex struct {
	date    int
	symbol  int
	returns [panel.NumHorizons]int
}

// mapColumns locates the canonical columns in the header, reporting every
// missing column in one error.
func mapColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		// Exported files carry a UTF-8 BOM glued to the first column name.
		pos[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}

	var missing []string
	idx := columnIndex{}
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx.date = lookup(CanonicalHeader[0])
	idx.symbol = lookup(CanonicalHeader[1])
	for k := 0; k < panel.NumHorizons; k++ {
		idx.returns[k] = lookup(CanonicalHeader[2+k])
	}

	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseReturn(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, fmt.Errorf("empty cell")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("parse float: %w", err)
	}
	return v, nil
}
