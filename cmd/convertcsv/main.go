// Command convertcsv converts a vendor stock-returns workbook into the
// canonical long-format CSV consumed by entropy-report.
package main

import (
	"flag"
	"log/slog"
	"os"

	"entropyx/internal/config"
	"entropyx/internal/dataprocessing"
	"entropyx/internal/exporter"
	"entropyx/internal/files"
	"entropyx/internal/infrastructure"
	"entropyx/internal/validation"
)

func main() {
	input := flag.String("in", "", "input workbook (.xlsx), or a directory to pick the newest workbook from (defaults to data_dir)")
	output := flag.String("out", "", "output CSV path (defaults to <data_dir>/returns_panel.csv)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirs(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = paths.DataDir
	}
	if *output == "" {
		*output = paths.ReturnsCSV()
	}

	validator := validation.NewFileValidator(logger)

	// A directory input means "use the newest workbook in it".
	if info, err := os.Stat(*input); err == nil && info.IsDir() {
		workbooks, err := files.NewDiscovery(paths.DataDir).FindWorkbooks(*input)
		if err != nil {
			logger.Error("Failed to scan for workbooks", "dir", *input, "error", err)
			os.Exit(1)
		}
		latest, ok := files.Latest(workbooks)
		if !ok {
			logger.Error("No workbooks found", "dir", *input, "hint", "use -in <file.xlsx>")
			os.Exit(1)
		}
		logger.Info("Selected newest workbook", "dir", *input, "workbook", latest.Name)
		*input = latest.Path
	}

	if err := validator.ValidateInputFile(*input, ".xlsx", ".xls"); err != nil {
		logger.Error("Invalid input workbook", "error", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputPath(*output); err != nil {
		logger.Error("Invalid output path", "error", err)
		os.Exit(1)
	}

	logger.Info("Converting returns workbook", "input", *input, "output", *output)

	rows, err := dataprocessing.ParseWorkbook(*input, logger)
	if err != nil {
		logger.Error("Failed to parse workbook", "input", *input, "error", err)
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteCanonicalCSV(rows, *output); err != nil {
		logger.Error("Failed to write canonical CSV", "output", *output, "error", err)
		os.Exit(1)
	}

	logger.Info("Conversion completed", "rows", len(rows), "output", *output)
}
