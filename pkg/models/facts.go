package models

import "strings"

// Visibility classifies a declaration by its naming convention.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// VisibilityOf derives visibility from a declaration name. A double
// underscore prefix without a matching suffix marks a private name, a single
// leading underscore marks a protected one. Dunder names stay public.
func VisibilityOf(name string) Visibility {
	switch {
	case strings.HasPrefix(name, "__") && !strings.HasSuffix(name, "__"):
		return VisibilityPrivate
	case strings.HasPrefix(name, "_"):
		return VisibilityProtected
	default:
		return VisibilityPublic
	}
}

// FunctionFact is everything the metrics need to know about one function or
// method. Lines are 1-based and inclusive.
type FunctionFact struct {
	Name        string     `json:"name"`
	StartLine   int        `json:"start_line"`
	EndLine     int        `json:"end_line"`
	Complexity  int        `json:"complexity"`
	Parameters  int        `json:"parameters"`
	HasDoc      bool       `json:"has_doc"`
	Visibility  Visibility `json:"visibility"`
	IsGenerator bool       `json:"is_generator,omitempty"`
	OwnerType   string     `json:"owner_type,omitempty"` // empty for free functions
}

// LineCount returns the inclusive span of the function in lines.
func (f FunctionFact) LineCount() int {
	if f.EndLine < f.StartLine {
		return 0
	}
	return f.EndLine - f.StartLine + 1
}

// IsMethod reports whether the function belongs to a type.
func (f FunctionFact) IsMethod() bool {
	return f.OwnerType != ""
}

// IsPrivate reports whether the function is hidden from the public surface.
// Any leading underscore counts, matching the doc-coverage rules.
func (f FunctionFact) IsPrivate() bool {
	return f.Visibility == VisibilityPrivate || strings.HasPrefix(f.Name, "_")
}

// TypeFact describes one class or type declaration.
type TypeFact struct {
	Name      string         `json:"name"`
	StartLine int            `json:"start_line"`
	EndLine   int            `json:"end_line"`
	HasDoc    bool           `json:"has_doc"`
	Methods   []FunctionFact `json:"methods,omitempty"`
}

// ParseIssue is a syntax problem found while parsing. Line and Column are
// 1-based; zero means unknown.
type ParseIssue struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ParseOutcome is the extraction result for one unit. A unit that failed to
// parse still carries an outcome with its errors so the run can report it.
type ParseOutcome struct {
	Unit         SourceUnit     `json:"unit"`
	Functions    []FunctionFact `json:"functions,omitempty"` // free functions only
	Types        []TypeFact     `json:"types,omitempty"`
	TotalLines   int            `json:"total_lines"`
	CodeLines    int            `json:"code_lines"`
	CommentLines int            `json:"comment_lines"`
	Errors       []ParseIssue   `json:"errors,omitempty"`
}

// AllFunctions returns free functions followed by every method, in source
// order within each group.
func (o *ParseOutcome) AllFunctions() []FunctionFact {
	out := make([]FunctionFact, 0, o.FunctionCount())
	out = append(out, o.Functions...)
	for _, t := range o.Types {
		out = append(out, t.Methods...)
	}
	return out
}

// FunctionCount counts free functions plus methods.
func (o *ParseOutcome) FunctionCount() int {
	n := len(o.Functions)
	for _, t := range o.Types {
		n += len(t.Methods)
	}
	return n
}

// CommentRatio is comment lines over total lines, 0 for an empty unit.
func (o *ParseOutcome) CommentRatio() float64 {
	if o.TotalLines == 0 {
		return 0
	}
	return float64(o.CommentLines) / float64(o.TotalLines)
}

// HasErrors reports whether parsing recorded any syntax issues.
func (o *ParseOutcome) HasErrors() bool {
	return len(o.Errors) > 0
}
