// Package report renders a project verdict as text, markdown, or JSON.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"

	"github.com/mirelabs/mire/internal/output"
	"github.com/mirelabs/mire/pkg/models"
)

// maxIssuesPerFile bounds the issue listing under each file entry.
const maxIssuesPerFile = 5

// ProjectReport wraps a project verdict for rendering.
type ProjectReport struct {
	Verdict  *models.ProjectVerdict
	TopFiles int // worst files to show, 0 means all
}

// New creates a report over a sealed verdict.
func New(verdict *models.ProjectVerdict, topFiles int) *ProjectReport {
	return &ProjectReport{Verdict: verdict, TopFiles: topFiles}
}

func (r *ProjectReport) RenderData() any {
	return r.Verdict
}

// worst returns the indexes of the files to show, worst first.
func (r *ProjectReport) worst() []int {
	idx := r.Verdict.WorstFiles()
	if r.TopFiles > 0 && len(idx) > r.TopFiles {
		idx = idx[:r.TopFiles]
	}
	return idx
}

// fileIssues flattens and orders a file's issues, worst severity first.
func fileIssues(fv *models.FileVerdict) []models.IssueRecord {
	var issues []models.IssueRecord
	for _, v := range fv.Verdicts {
		issues = append(issues, v.Issues...)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Severity.Rank() != issues[j].Severity.Rank() {
			return issues[i].Severity.Rank() > issues[j].Severity.Rank()
		}
		return issues[i].Line < issues[j].Line
	})
	if len(issues) > maxIssuesPerFile {
		issues = issues[:maxIssuesPerFile]
	}
	return issues
}

func scoreColor(score float64) *color.Color {
	switch {
	case score < 25:
		return color.New(color.FgGreen)
	case score < 55:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical, models.SeverityHigh:
		return color.New(color.FgRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func (r *ProjectReport) RenderText(w io.Writer, colored bool) error {
	v := r.Verdict

	headline := fmt.Sprintf("Overall score: %.1f / 100  (%s: %s)", v.Score, v.Tier, v.Tier.Label())
	if colored {
		scoreColor(v.Score).Add(color.Bold).Fprintln(w, headline)
	} else {
		fmt.Fprintln(w, headline)
	}
	fmt.Fprintln(w)

	if err := r.summaryTable().RenderText(w, colored); err != nil {
		return err
	}

	worst := r.worst()
	if len(worst) > 0 {
		if err := r.worstTable(worst).RenderText(w, colored); err != nil {
			return err
		}

		for _, i := range worst {
			fv := &v.Files[i]
			issues := fileIssues(fv)
			if len(issues) == 0 {
				continue
			}
			if colored {
				color.New(color.Bold).Fprintf(w, "%s (%.1f, %s)\n", fv.Path(), fv.Score, fv.Tier)
			} else {
				fmt.Fprintf(w, "%s (%.1f, %s)\n", fv.Path(), fv.Score, fv.Tier)
			}
			for _, iss := range issues {
				line := ""
				if iss.Line > 0 {
					line = fmt.Sprintf(":%d", iss.Line)
				}
				if colored {
					severityColor(iss.Severity).Fprintf(w, "  [%s]", iss.Severity)
					fmt.Fprintf(w, " %s%s %s\n", fv.Path(), line, iss.Message)
				} else {
					fmt.Fprintf(w, "  [%s] %s%s %s\n", iss.Severity, fv.Path(), line, iss.Message)
				}
			}
			fmt.Fprintln(w)
		}
	}

	for _, d := range v.Diagnostics {
		if colored {
			color.New(color.FgYellow).Fprintf(w, "note: %s\n", d)
		} else {
			fmt.Fprintf(w, "note: %s\n", d)
		}
	}

	return nil
}

func (r *ProjectReport) RenderMarkdown(w io.Writer) error {
	v := r.Verdict

	fmt.Fprintf(w, "# Code quality report\n\n")
	fmt.Fprintf(w, "**Overall score: %.1f / 100** (%s: %s)\n\n", v.Score, v.Tier, v.Tier.Label())

	if err := r.summaryTable().RenderMarkdown(w); err != nil {
		return err
	}

	worst := r.worst()
	if len(worst) > 0 {
		if err := r.worstTable(worst).RenderMarkdown(w); err != nil {
			return err
		}

		for _, i := range worst {
			fv := &v.Files[i]
			issues := fileIssues(fv)
			if len(issues) == 0 {
				continue
			}
			fmt.Fprintf(w, "### %s (%.1f, %s)\n\n", fv.Path(), fv.Score, fv.Tier)
			for _, iss := range issues {
				line := ""
				if iss.Line > 0 {
					line = fmt.Sprintf(":%d", iss.Line)
				}
				fmt.Fprintf(w, "- **%s**%s %s\n", iss.Severity, line, iss.Message)
			}
			fmt.Fprintln(w)
		}
	}

	for _, d := range v.Diagnostics {
		fmt.Fprintf(w, "> %s\n", d)
	}

	return nil
}

func (r *ProjectReport) summaryTable() *output.Table {
	s := r.Verdict.Summary
	rows := [][]string{
		{"Files", strconv.Itoa(s.TotalFiles)},
		{"Scored", strconv.Itoa(s.ScoredFiles)},
		{"Failed", strconv.Itoa(s.FailedFiles)},
		{"Skipped", strconv.Itoa(s.SkippedFiles)},
		{"Lines", strconv.Itoa(s.TotalLines)},
		{"Functions", strconv.Itoa(s.TotalFunctions)},
		{"Issues", strconv.Itoa(s.TotalIssues)},
	}
	if s.ScoredFiles > 0 {
		rows = append(rows,
			[]string{"Score mean", fmt.Sprintf("%.1f", s.Scores.Mean)},
			[]string{"Score median", fmt.Sprintf("%.1f", s.Scores.Median)},
			[]string{"Score spread", fmt.Sprintf("%.1f - %.1f", s.Scores.Min, s.Scores.Max)},
		)
	}
	return &output.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

func (r *ProjectReport) worstTable(worst []int) *output.Table {
	rows := make([][]string, 0, len(worst))
	for _, i := range worst {
		fv := &r.Verdict.Files[i]
		rows = append(rows, []string{
			fv.Path(),
			fmt.Sprintf("%.1f", fv.Score),
			string(fv.Tier),
			strconv.Itoa(fv.IssueCount()),
		})
	}
	return &output.Table{
		Title:   "Worst files",
		Headers: []string{"File", "Score", "Tier", "Issues"},
		Rows:    rows,
	}
}
