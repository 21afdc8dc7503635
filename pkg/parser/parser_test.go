package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/mire/pkg/models"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want models.Language
	}{
		{"main.py", models.LangPython},
		{"types.pyi", models.LangPython},
		{"app.js", models.LangJavaScript},
		{"App.jsx", models.LangJavaScript},
		{"mod.mjs", models.LangJavaScript},
		{"server.ts", models.LangTypeScript},
		{"View.tsx", models.LangTypeScript},
		{"main.go", models.LangUnknown},
		{"README.md", models.LangUnknown},
		{"Makefile", models.LangUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}

func TestParsePython(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte("x = 1\n"), models.LangPython, "t.py")
	require.NoError(t, err)
	assert.Equal(t, "module", result.Tree.RootNode().Type())
	assert.Empty(t, SyntaxIssues(result))
}

func TestParseUnsupportedLanguage(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse(context.Background(), []byte("x"), models.LangUnknown, "t.xyz")
	assert.Error(t, err)
}

func TestSyntaxIssues(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte("def broken(:\n"), models.LangPython, "t.py")
	require.NoError(t, err)

	issues := SyntaxIssues(result)
	require.NotEmpty(t, issues)
	assert.Positive(t, issues[0].Line)
	assert.Positive(t, issues[0].Column)
}

func TestGetNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte("def f():\n    pass\n")
	result, err := p.Parse(context.Background(), src, models.LangPython, "t.py")
	require.NoError(t, err)

	fns := FindNodesByType(result.Tree.RootNode(), src, "function_definition")
	require.Len(t, fns, 1)
	name := fns[0].ChildByFieldName("name")
	assert.Equal(t, "f", GetNodeText(name, src))

	assert.Empty(t, GetNodeText(nil, src))
}
