package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"entropyx/internal/panel"
)

// Trailing-return column aliases per horizon, as seen across vendor
// workbook revisions. Matched case-insensitively.
var returnAliases = [panel.NumHorizons][]string{
	{"ret1", "ret_1m", "mom1", "mom1m", "r1"},
	{"ret3", "ret_3m", "mom3", "mom3m", "r3"},
	{"ret6", "ret_6m", "mom6", "mom6m", "r6"},
	{"ret12", "ret_12m", "mom12", "mom12m", "r12"},
}

var dateAliases = []string{"date", "month", "period"}
var symbolAliases = []string{"symbol", "ticker", "permno", "stock"}

// workbook date formats tried in order.
var workbookDateFormats = []string{
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"2006/01/02",
	"1/2/06",
	"2006-01-02 15:04:05",
}

// ParseWorkbook reads a vendor returns workbook and extracts the raw panel
// rows. The trading sheet is located by scanning for a header row that
// carries a date column, a symbol column, and all four trailing-return
// horizons; individual rows that fail to parse are skipped with a warning.
func ParseWorkbook(path string, logger *slog.Logger) ([]panel.Row, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetRows(sheet)
		if err != nil || len(cells) < 2 {
			continue
		}

		headerRow, cols, ok := findHeader(cells)
		if !ok {
			continue
		}

		logger.Info("found returns data sheet",
			"sheet", sheet,
			"header_row", headerRow,
			"total_rows", len(cells),
		)
		return parseSheet(cells[headerRow+1:], headerRow+2, cols, logger)
	}

	return nil, fmt.Errorf("no sheet with returns data found in %s", path)
}

// findHeader scans the first rows of a sheet for the header carrying all
// required columns.
func findHeader(cells [][]string) (int, columnIndex, bool) {
	limit := len(cells)
	if limit > 10 {
		limit = 10
	}

	for r := 0; r < limit; r++ {
		cols, ok := matchHeader(cells[r])
		if ok {
			return r, cols, true
		}
	}
	return 0, columnIndex{}, false
}

func matchHeader(row []string) (columnIndex, bool) {
	idx := columnIndex{date: -1, symbol: -1}
	for k := range idx.returns {
		idx.returns[k] = -1
	}

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if idx.date < 0 && contains(dateAliases, name) {
			idx.date = i
			continue
		}
		if idx.symbol < 0 && contains(symbolAliases, name) {
			idx.symbol = i
			continue
		}
		for k := range returnAliases {
			if idx.returns[k] < 0 && contains(returnAliases[k], name) {
				idx.returns[k] = i
			}
		}
	}

	if idx.date < 0 || idx.symbol < 0 {
		return columnIndex{}, false
	}
	for _, i := range idx.returns {
		if i < 0 {
			return columnIndex{}, false
		}
	}
	return idx, true
}

// parseSheet converts data rows below the header into raw panel rows.
func parseSheet(cells [][]string, firstLine int, cols columnIndex, logger *slog.Logger) ([]panel.Row, error) {
	var rows []panel.Row
	skipped := 0

	for i, record := range cells {
		line := firstLine + i
		row, err := parseWorkbookRow(record, cols)
		if err != nil {
			if !isBlankRow(record) {
				logger.Warn("skipping workbook row", "line", line, "error", err)
				skipped++
			}
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no parseable data rows below header")
	}

	logger.Info("parsed workbook sheet", "rows", len(rows), "skipped", skipped)
	return rows, nil
}

func parseWorkbookRow(record []string, cols columnIndex) (panel.Row, error) {
	need := cols.date
	if cols.symbol > need {
		need = cols.symbol
	}
	for _, i := range cols.returns {
		if i > need {
			need = i
		}
	}
	if len(record) <= need {
		return panel.Row{}, fmt.Errorf("short row: %d cells", len(record))
	}

	date, err := parseWorkbookDate(record[cols.date])
	if err != nil {
		return panel.Row{}, err
	}

	symbol := strings.TrimSpace(strings.ToUpper(record[cols.symbol]))
	if symbol == "" {
		return panel.Row{}, fmt.Errorf("empty symbol")
	}

	row := panel.Row{Symbol: symbol, Date: date}
	for k, i := range cols.returns {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return panel.Row{}, fmt.Errorf("return column %d: %w", k, err)
		}
		row.Trailing[k] = v
	}
	return row, nil
}

func parseWorkbookDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, format := range workbookDateFormats {
		if d, err := time.Parse(format, cell); err == nil {
			return d, nil
		}
	}
	// Excel serial date numbers show up when the sheet lost its formatting.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if d, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", cell)
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
