package analyzer

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/mire/pkg/config"
	"github.com/mirelabs/mire/pkg/models"
)

const cleanPython = `"""Small helpers."""


def add(a, b):
    """Adds two numbers."""
    return a + b
`

func TestNewClampsWorkers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.Workers = 4096
	assert.Equal(t, runtime.NumCPU(), New(cfg).workers)

	cfg.Analysis.Workers = 1
	assert.Equal(t, 1, New(cfg).workers)

	cfg.Analysis.Workers = 0
	def := New(cfg).workers
	assert.Positive(t, def)
	assert.LessOrEqual(t, def, maxWorkers)
	assert.LessOrEqual(t, def, runtime.NumCPU())
}

func TestAnalyzeUnits(t *testing.T) {
	units := []models.SourceUnit{
		models.NewSourceUnit("z/clean.py", models.LangPython, []byte(cleanPython)),
		models.NewSourceUnit("a/broken.py", models.LangPython, []byte("def broken(:\n")),
		models.NewSourceUnit("m/notes.txt", models.LangUnknown, []byte("plain text")),
	}

	a := New(nil)
	pv := a.AnalyzeUnits(context.Background(), units)

	require.Len(t, pv.Files, 3)
	assert.Equal(t, "a/broken.py", pv.Files[0].Path())
	assert.Equal(t, "m/notes.txt", pv.Files[1].Path())
	assert.Equal(t, "z/clean.py", pv.Files[2].Path())

	assert.Equal(t, models.StatusParseFailed, pv.Files[0].Status)
	assert.NotEmpty(t, pv.Files[0].Errors)
	assert.Equal(t, models.StatusSkipped, pv.Files[1].Status)
	assert.Equal(t, models.StatusScored, pv.Files[2].Status)
	assert.Len(t, pv.Files[2].Verdicts, 3)

	assert.Equal(t, 1, pv.Summary.ScoredFiles)
	assert.Equal(t, 1, pv.Summary.FailedFiles)
	assert.Equal(t, 1, pv.Summary.SkippedFiles)
}

func TestAnalyzeUnitsDeterministic(t *testing.T) {
	units := []models.SourceUnit{
		models.NewSourceUnit("b.py", models.LangPython, []byte("def b():\n    return 2\n")),
		models.NewSourceUnit("a.py", models.LangPython, []byte("def a():\n    return 1\n")),
	}

	a := New(nil)
	first := a.AnalyzeUnits(context.Background(), units)
	second := a.AnalyzeUnits(context.Background(), units)

	assert.Equal(t, first.Score, second.Score)
	require.Len(t, first.Files, 2)
	assert.Equal(t, "a.py", first.Files[0].Path())
	assert.Equal(t, first.Files[0].Score, second.Files[0].Score)
}

func TestAnalyzeUnitsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := []models.SourceUnit{
		models.NewSourceUnit("a.py", models.LangPython, []byte("x = 1\n")),
	}

	pv := New(nil).AnalyzeUnits(ctx, units)
	require.Len(t, pv.Files, 1)
	assert.Equal(t, models.StatusSkipped, pv.Files[0].Status)
	assert.NotEmpty(t, pv.Files[0].Errors)
}

func TestAnalyzeUnitsEmpty(t *testing.T) {
	pv := New(nil).AnalyzeUnits(context.Background(), nil)
	assert.Zero(t, pv.Score)
	assert.Equal(t, models.TierExcellent, pv.Tier)
}
