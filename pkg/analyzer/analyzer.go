// Package analyzer orchestrates a run: parsing, fact extraction, metric
// scoring, and the project-level aggregate. Failures stay scoped to the
// file that caused them; the run itself never aborts.
package analyzer

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mirelabs/mire/pkg/config"
	"github.com/mirelabs/mire/pkg/extract"
	"github.com/mirelabs/mire/pkg/metrics"
	"github.com/mirelabs/mire/pkg/models"
	"github.com/mirelabs/mire/pkg/parser"
)

// maxWorkers caps the pool size regardless of core count; the per-task
// parser allocation makes wider pools counterproductive.
const maxWorkers = 4

// Analyzer runs the metric set over source units.
type Analyzer struct {
	registry *metrics.Registry
	workers  int
	timeout  time.Duration
}

// New builds an analyzer from configuration. A nil config gets defaults.
func New(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	workers := cfg.Analysis.Workers
	if workers <= 0 {
		workers = min(maxWorkers, runtime.NumCPU())
	} else {
		// A configured value never exceeds the available parallelism.
		workers = min(workers, runtime.NumCPU())
	}
	var timeout time.Duration
	if cfg.Analysis.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.Analysis.TimeoutSecs) * time.Second
	}
	return &Analyzer{
		registry: metrics.NewRegistry(cfg.Weights),
		workers:  workers,
		timeout:  timeout,
	}
}

// AnalyzeUnits scores every unit and seals the project verdict. Results are
// ordered by path. Cancelling the context stops scheduling new units;
// already-finished verdicts are kept and unstarted units are marked skipped.
func (a *Analyzer) AnalyzeUnits(ctx context.Context, units []models.SourceUnit) *models.ProjectVerdict {
	verdicts := make([]models.FileVerdict, len(units))
	tracker := TrackerFromContext(ctx)
	if tracker != nil {
		tracker.SetTotal(len(units))
	}

	p := pool.New().WithMaxGoroutines(a.workers)
	for i, unit := range units {
		p.Go(func() {
			select {
			case <-ctx.Done():
				verdicts[i] = models.FileVerdict{
					Outcome: &models.ParseOutcome{Unit: unit},
					Status:  models.StatusSkipped,
					Errors:  []string{fmt.Sprintf("not analyzed: %v", ctx.Err())},
				}
			default:
				verdicts[i] = a.analyzeUnit(ctx, unit)
			}
			if tracker != nil {
				tracker.Tick(unit.Path)
			}
		})
	}
	p.Wait()

	sort.Slice(verdicts, func(i, j int) bool {
		return verdicts[i].Path() < verdicts[j].Path()
	})

	return a.aggregate(verdicts)
}

// analyzeUnit runs the full pipeline for one unit, wrapping it in the
// per-file time budget when one is configured.
func (a *Analyzer) analyzeUnit(ctx context.Context, unit models.SourceUnit) models.FileVerdict {
	if a.timeout <= 0 {
		return a.scoreUnit(ctx, unit)
	}

	done := make(chan models.FileVerdict, 1)
	unitCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	go func() {
		done <- a.scoreUnit(unitCtx, unit)
	}()

	select {
	case fv := <-done:
		return fv
	case <-unitCtx.Done():
		return models.FileVerdict{
			Outcome: &models.ParseOutcome{Unit: unit},
			Status:  models.StatusTimedOut,
			Errors:  []string{fmt.Sprintf("analysis exceeded %s budget", a.timeout)},
		}
	}
}

// scoreUnit is the strictly sequential parse, extract, score pipeline.
func (a *Analyzer) scoreUnit(ctx context.Context, unit models.SourceUnit) models.FileVerdict {
	fv := models.FileVerdict{
		Outcome: &models.ParseOutcome{Unit: unit},
	}

	if !extract.Supported(unit.Language) {
		fv.Status = models.StatusSkipped
		return fv
	}

	psr := parser.New()
	defer psr.Close()

	result, err := psr.Parse(ctx, unit.Text, unit.Language, unit.Path)
	if err != nil {
		fv.Status = models.StatusParseFailed
		fv.Errors = append(fv.Errors, fmt.Sprintf("parse failed: %v", err))
		return fv
	}

	extractor, err := extract.New(unit.Language)
	if err != nil {
		fv.Status = models.StatusSkipped
		return fv
	}
	fv.Outcome = extractor.Extract(result)

	if fv.Outcome.HasErrors() {
		fv.Status = models.StatusParseFailed
		for _, issue := range fv.Outcome.Errors {
			fv.Errors = append(fv.Errors, fmt.Sprintf("%s at %d:%d", issue.Message, issue.Line, issue.Column))
		}
		return fv
	}

	for _, m := range a.registry.Metrics() {
		verdict, err := m.Analyze(fv.Outcome)
		if err != nil {
			fv.Errors = append(fv.Errors, fmt.Sprintf("metric %s: %v", m.ID(), err))
			continue
		}
		fv.Verdicts = append(fv.Verdicts, verdict)
	}

	fv.Score = models.CompositeScore(fv.Verdicts)
	fv.Tier = models.TierForScore(fv.Score)
	fv.Status = models.StatusScored
	return fv
}
