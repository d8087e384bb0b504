// Command entropy-report runs the panel statistics pipeline: it loads the
// canonical returns CSV, assembles the panel, computes the four
// information statistics along both axes, and writes the report CSVs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/google/uuid"

	"entropyx/internal/config"
	"entropyx/internal/dataprocessing"
	"entropyx/internal/entropy"
	"entropyx/internal/exporter"
	"entropyx/internal/infrastructure"
	"entropyx/internal/panel"
	"entropyx/internal/validation"
)

func main() {
	input := flag.String("in", "", "canonical returns CSV (defaults to <data_dir>/returns_panel.csv)")
	outputDir := flag.String("out", "", "output directory for reports (defaults to reports_dir)")
	neighbors := flag.Int("k", 0, "k for the k-NN entropy estimator (overrides config)")
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
	logger = logger.With("run_id", uuid.New().String())

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirs(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = paths.ReturnsCSV()
	}
	if *outputDir == "" {
		*outputDir = paths.ReportsDir
	}
	if *neighbors == 0 {
		*neighbors = cfg.Analysis.Neighbors
	}

	if err := validation.NewFileValidator(logger).ValidateInputFile(*input, ".csv"); err != nil {
		logger.Error("Invalid input file", "error", err)
		os.Exit(1)
	}

	rows, err := dataprocessing.LoadReturnsCSV(*input, logger)
	if err != nil {
		logger.Error("Failed to load returns CSV", "input", *input, "error", err)
		os.Exit(1)
	}

	pnl, err := panel.Assemble(rows)
	if err != nil {
		logger.Error("Failed to assemble panel", "error", err)
		os.Exit(1)
	}
	logger.Info("Assembled panel",
		"raw_rows", len(rows),
		"observations", len(pnl),
		"symbols", len(pnl.Symbols()),
	)

	calc := entropy.NewCalculator(entropy.NewKNNEstimator(*neighbors), logger)
	calc.SetParallelism(cfg.Analysis.Parallelism)
	writer := exporter.NewCSVWriter(logger)

	ctx := context.Background()
	for _, axis := range []panel.Axis{panel.CrossSection, panel.TimeSeries} {
		rs, err := calc.Compute(ctx, pnl, axis)
		if err != nil {
			logger.Error("Statistics pass failed", "axis", axis.String(), "error", err)
			os.Exit(1)
		}

		reportPath := dataprocessing.StatsReportPath(*outputDir, axis)
		if err := writer.WriteStatsReport(rs, reportPath); err != nil {
			logger.Error("Failed to write stats report", "path", reportPath, "error", err)
			os.Exit(1)
		}

		summaryPath := reportPath[:len(reportPath)-len(".csv")] + "_summary.txt"
		if err := writer.WriteSummary(rs, summaryPath); err != nil {
			logger.Error("Failed to write summary", "path", summaryPath, "error", err)
			os.Exit(1)
		}

		logger.Info("Report generated",
			"axis", axis.String(),
			"partitions", len(rs.Stats),
			"estimator_failures", rs.EstimatorFailures,
			"report", reportPath,
		)

		if axis == panel.TimeSeries {
			printTopBottom(rs)
		}
	}
}

type rankedSymbol struct {
	key string
	mi  float64
}

// rankByMutualInfo returns the partitions with a finite mutual information
// estimate, highest first.
func rankByMutualInfo(stats []entropy.PartitionStats) []rankedSymbol {
	var ranked []rankedSymbol
	for _, st := range stats {
		if !math.IsNaN(st.MutualInfo) {
			ranked = append(ranked, rankedSymbol{st.Key, st.MutualInfo})
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].mi > ranked[j].mi })
	return ranked
}

// splitTopBottom picks the top and bottom show entries from a ranked list.
// The two slices never overlap: with fewer than 2*show entries the bottom
// gets only what the top did not already take.
func splitTopBottom(ranked []rankedSymbol, show int) (top, bottom []rankedSymbol) {
	if show > len(ranked) {
		show = len(ranked)
	}
	top = ranked[:show]

	bottomStart := len(ranked) - show
	if bottomStart < show {
		bottomStart = show
	}
	bottom = ranked[bottomStart:]
	return top, bottom
}

// printTopBottom prints the symbols whose return history carries the most
// and least past/future mutual information.
func printTopBottom(rs *entropy.ResultSet) {
	ranked := rankByMutualInfo(rs.Stats)
	if len(ranked) == 0 {
		return
	}

	top, bottom := splitTopBottom(ranked, 5)

	fmt.Println("\n=== HIGHEST PAST/FUTURE MUTUAL INFORMATION ===")
	for _, e := range top {
		fmt.Printf("%-8s %.4f\n", e.key, e.mi)
	}
	if len(bottom) > 0 {
		fmt.Println("\n=== LOWEST PAST/FUTURE MUTUAL INFORMATION ===")
		for _, e := range bottom {
			fmt.Printf("%-8s %.4f\n", e.key, e.mi)
		}
	}
}
