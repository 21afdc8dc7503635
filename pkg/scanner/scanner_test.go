package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/mire/pkg/models"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "x = 1\n")
	writeFile(t, root, "src/app.ts", "const x = 1;\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {};\n")
	writeFile(t, root, "__pycache__/main.cpython-312.pyc", "")
	writeFile(t, root, "tests/test_main.py", "")
	writeFile(t, root, "app.min.js", "var a=1;\n")

	files, err := New(nil).ScanDir(root)
	require.NoError(t, err)

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"main.py", "src/app.ts", "tests/test_main.py"}, rels)
}

func TestScanDirExcludePattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main_test.py", "x = 1\n")
	writeFile(t, root, "main.py", "x = 1\n")

	files, err := New(nil).ScanDir(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.py", filepath.Base(files[0]))
}

func TestUnitsSingleFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "only.py", "x = 1\n")

	units, truncated, err := New(nil).Units(filepath.Join(root, "only.py"), 0)
	require.NoError(t, err)
	assert.Zero(t, truncated)
	require.Len(t, units, 1)
	assert.Equal(t, models.LangPython, units[0].Language)
	assert.Equal(t, []byte("x = 1\n"), units[0].Text)
}

func TestUnitsTruncation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "a = 1\n")
	writeFile(t, root, "b.py", "b = 1\n")
	writeFile(t, root, "c.py", "c = 1\n")

	units, truncated, err := New(nil).Units(root, 2)
	require.NoError(t, err)
	assert.Len(t, units, 2)
	assert.Equal(t, 1, truncated)
}

func TestUnitsMissingTarget(t *testing.T) {
	_, _, err := New(nil).Units(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}
