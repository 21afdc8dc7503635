// Package extract turns parsed syntax trees into the language-neutral facts
// the metrics consume: functions, types, line counts, and parse errors.
package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mirelabs/mire/pkg/models"
	"github.com/mirelabs/mire/pkg/parser"
)

// Extractor produces a ParseOutcome for one language.
type Extractor struct {
	profile *Profile
}

// New returns an extractor for the language, or an error when no adapter
// exists for it.
func New(lang models.Language) (*Extractor, error) {
	p := ProfileFor(lang)
	if p == nil {
		return nil, fmt.Errorf("no extraction profile for language: %s", lang)
	}
	return &Extractor{profile: p}, nil
}

// Supported reports whether an extraction profile exists for the language.
func Supported(lang models.Language) bool {
	return ProfileFor(lang) != nil
}

// Extract assembles the outcome for a parsed unit. Syntax errors are
// recorded on the outcome rather than returned; a tree with errors still
// yields whatever facts could be read from it.
func (e *Extractor) Extract(result *parser.ParseResult) *models.ParseOutcome {
	p := e.profile
	outcome := &models.ParseOutcome{
		Unit: models.NewSourceUnit(result.Path, result.Language, result.Source),
	}

	outcome.TotalLines = countLines(result.Source)
	outcome.CommentLines = countCommentLines(result.Source, p.lineComment, p.blockMarks)
	outcome.CodeLines = outcome.TotalLines - outcome.CommentLines
	outcome.Errors = parser.SyntaxIssues(result)

	root := result.Tree.RootNode()

	// Methods are claimed by their class first; every other function
	// declaration, nested ones included, lands in the free list.
	claimed := make(map[uint32]bool)
	parser.WalkTyped(root, result.Source, func(node *sitter.Node, kind string, source []byte) bool {
		if !p.classKinds[kind] {
			return true
		}
		tf := models.TypeFact{
			Name:      p.nameOf(node, source),
			StartLine: int(node.StartPoint().Row) + 1,
			EndLine:   int(node.EndPoint().Row) + 1,
			HasDoc:    p.hasDoc(node, source),
		}
		for _, member := range e.classMembers(node) {
			claimed[member.StartByte()] = true
			tf.Methods = append(tf.Methods, e.functionFact(member, source, tf.Name))
		}
		outcome.Types = append(outcome.Types, tf)
		return true
	})

	parser.WalkTyped(root, result.Source, func(node *sitter.Node, kind string, source []byte) bool {
		if !p.functionKinds[kind] || claimed[node.StartByte()] {
			return true
		}
		fact := e.functionFact(node, source, "")
		if fact.Name == "" {
			// Anonymous expressions (inline callbacks) are not facts.
			return true
		}
		outcome.Functions = append(outcome.Functions, fact)
		return true
	})

	return outcome
}

// classMembers returns the function nodes declared directly in a class body,
// unwrapping decorator wrappers.
func (e *Extractor) classMembers(class *sitter.Node) []*sitter.Node {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var members []*sitter.Node
	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Type() == e.profile.methodKind {
			members = append(members, child)
		}
	}
	return members
}

func (e *Extractor) functionFact(node *sitter.Node, source []byte, owner string) models.FunctionFact {
	p := e.profile
	name := p.nameOf(node, source)
	vis := models.VisibilityOf(name)
	if strings.HasPrefix(name, "#") {
		vis = models.VisibilityPrivate
	}
	return models.FunctionFact{
		Name:        name,
		StartLine:   int(node.StartPoint().Row) + 1,
		EndLine:     int(node.EndPoint().Row) + 1,
		Complexity:  p.BranchComplexity(node, source),
		Parameters:  p.paramCount(node),
		HasDoc:      p.hasDoc(node, source),
		Visibility:  vis,
		IsGenerator: p.isGenerator(node, source),
		OwnerType:   owner,
	}
}
