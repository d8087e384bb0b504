package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "returns.xlsx")
	require.NoError(t, os.WriteFile(good, []byte("data"), 0o644))
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	v := NewFileValidator(nil)

	tests := []struct {
		name   string
		path   string
		exts   []string
		errMsg string
	}{
		{name: "valid", path: good, exts: []string{".xlsx", ".xls"}},
		{name: "no extension filter", path: good},
		{name: "missing", path: filepath.Join(dir, "absent.xlsx"), errMsg: "does not exist"},
		{name: "directory", path: dir, errMsg: "is a directory"},
		{name: "empty file", path: empty, errMsg: "is empty"},
		{name: "wrong extension", path: good, exts: []string{".csv"}, errMsg: "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.path, tt.exts...)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	v := NewFileValidator(nil)

	assert.Error(t, v.ValidateOutputPath(""))

	out := filepath.Join(t.TempDir(), "reports", "nested", "out.csv")
	require.NoError(t, v.ValidateOutputPath(out))

	info, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
