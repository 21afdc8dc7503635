package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/mirelabs/mire/pkg/models"
)

// Parser wraps a tree-sitter parser. Instances are not goroutine-safe; the
// engine creates one per task.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and its inputs.
type ParseResult struct {
	Tree     *sitter.Tree
	Language models.Language
	Source   []byte
	Path     string
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses source text with the given language tag. The .tsx/.jsx
// variants ride on the language tag plus the path extension.
func (p *Parser) Parse(ctx context.Context, source []byte, lang models.Language, path string) (*ParseResult, error) {
	tsLang, err := grammarFor(lang, path)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// grammarFor maps a language tag to its tree-sitter grammar.
func grammarFor(lang models.Language, path string) (*sitter.Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch lang {
	case models.LangPython:
		return python.GetLanguage(), nil
	case models.LangJavaScript:
		if ext == ".jsx" {
			// The tsx grammar handles JSX syntax.
			return tsx.GetLanguage(), nil
		}
		return javascript.GetLanguage(), nil
	case models.LangTypeScript:
		if ext == ".tsx" {
			return tsx.GetLanguage(), nil
		}
		return typescript.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) models.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw", ".pyi":
		return models.LangPython
	case ".js", ".jsx", ".mjs", ".cjs":
		return models.LangJavaScript
	case ".ts", ".tsx":
		return models.LangTypeScript
	default:
		return models.LangUnknown
	}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits AST nodes.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor visits AST nodes with pre-cached node type to avoid CGO overhead.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the AST calling visitor for each node. Returning false
// from the visitor skips the node's children.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// WalkTyped traverses the AST with cached node types to reduce CGO overhead.
// Use this when you need to check node types frequently.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if !visitor(node, nodeType, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// FindNodes returns all nodes matching a predicate.
func FindNodes(root *sitter.Node, source []byte, predicate func(*sitter.Node) bool) []*sitter.Node {
	var results []*sitter.Node
	Walk(root, source, func(node *sitter.Node, source []byte) bool {
		if predicate(node) {
			results = append(results, node)
		}
		return true
	})
	return results
}

// FindNodesByType returns all nodes of a specific type.
func FindNodesByType(root *sitter.Node, source []byte, nodeType string) []*sitter.Node {
	return FindNodes(root, source, func(n *sitter.Node) bool {
		return n.Type() == nodeType
	})
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// SyntaxIssues collects ERROR and MISSING nodes from a parsed tree as
// parse issues with 1-based positions.
func SyntaxIssues(result *ParseResult) []models.ParseIssue {
	var issues []models.ParseIssue
	Walk(result.Tree.RootNode(), result.Source, func(node *sitter.Node, _ []byte) bool {
		switch {
		case node.Type() == "ERROR":
			issues = append(issues, models.ParseIssue{
				Message: "syntax error",
				Line:    int(node.StartPoint().Row) + 1,
				Column:  int(node.StartPoint().Column) + 1,
			})
			return false
		case node.IsMissing():
			issues = append(issues, models.ParseIssue{
				Message: fmt.Sprintf("missing %s", node.Type()),
				Line:    int(node.StartPoint().Row) + 1,
				Column:  int(node.StartPoint().Column) + 1,
			})
			return false
		}
		return true
	})
	return issues
}
