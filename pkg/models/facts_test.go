package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityOf(t *testing.T) {
	assert.Equal(t, VisibilityPublic, VisibilityOf("run"))
	assert.Equal(t, VisibilityProtected, VisibilityOf("_helper"))
	assert.Equal(t, VisibilityPrivate, VisibilityOf("__secret"))
	// Dunder names stay public.
	assert.Equal(t, VisibilityPublic, VisibilityOf("__init__"))
}

func TestFunctionFactIsPrivate(t *testing.T) {
	// Any leading underscore hides a function from the public surface,
	// dunders included.
	assert.False(t, FunctionFact{Name: "run", Visibility: VisibilityPublic}.IsPrivate())
	assert.True(t, FunctionFact{Name: "_helper", Visibility: VisibilityProtected}.IsPrivate())
	assert.True(t, FunctionFact{Name: "__secret", Visibility: VisibilityPrivate}.IsPrivate())
	assert.True(t, FunctionFact{Name: "__init__", Visibility: VisibilityPublic}.IsPrivate())
}

func TestFunctionFactLineCount(t *testing.T) {
	assert.Equal(t, 5, FunctionFact{StartLine: 3, EndLine: 7}.LineCount())
	assert.Equal(t, 1, FunctionFact{StartLine: 3, EndLine: 3}.LineCount())
	assert.Equal(t, 0, FunctionFact{StartLine: 7, EndLine: 3}.LineCount())
}

func TestParseOutcomeAllFunctions(t *testing.T) {
	o := &ParseOutcome{
		Functions: []FunctionFact{{Name: "free"}},
		Types: []TypeFact{
			{Name: "T", Methods: []FunctionFact{{Name: "m1", OwnerType: "T"}, {Name: "m2", OwnerType: "T"}}},
		},
	}
	all := o.AllFunctions()
	assert.Len(t, all, 3)
	assert.Equal(t, "free", all[0].Name)
	assert.Equal(t, "m1", all[1].Name)
	assert.Equal(t, 3, o.FunctionCount())
}

func TestParseOutcomeCommentRatio(t *testing.T) {
	assert.Zero(t, (&ParseOutcome{}).CommentRatio())
	o := &ParseOutcome{TotalLines: 100, CommentLines: 25}
	assert.InDelta(t, 0.25, o.CommentRatio(), 1e-9)
}
