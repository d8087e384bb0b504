package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the file locations the tools read and write.
// All paths derive from the configured data and reports directories.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths builds the path set from configuration.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		DataDir:    cfg.DataDir,
		ReportsDir: cfg.ReportsDir,
		LogsDir:    cfg.LogsDir,
	}
}

// GetDataPath returns the path of a file under the data directory.
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetReportPath returns the path of a file under the reports directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// ReturnsCSV is the canonical long-format returns file the conversion step
// produces and the report step consumes.
func (p *Paths) ReturnsCSV() string {
	return p.GetDataPath("returns_panel.csv")
}

// EnsureDirs creates the data, reports and logs directories if missing.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
