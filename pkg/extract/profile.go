package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mirelabs/mire/pkg/models"
	"github.com/mirelabs/mire/pkg/parser"
)

// Profile describes how one language's grammar maps onto the extraction
// contract: which node kinds declare functions and types, which count as
// branch points, and how comments are written.
type Profile struct {
	Language models.Language

	functionKinds map[string]bool
	classKinds    map[string]bool
	methodKind    string // function kind used for members of a class body
	branchKinds   map[string]bool

	lineComment string
	blockMarks  [][2]string // block comment open/close delimiter pairs

	// extraBranch contributes branch counts beyond the flat kind table,
	// e.g. handler bonuses on try statements or boolean operators that the
	// grammar hides inside generic binary expressions.
	extraBranch func(node *sitter.Node, kind string, source []byte) int

	hasDoc      func(node *sitter.Node, source []byte) bool
	paramCount  func(node *sitter.Node) int
	isGenerator func(node *sitter.Node, source []byte) bool
	nameOf      func(node *sitter.Node, source []byte) string
}

// ProfileFor returns the extraction profile for a language, or nil when the
// language has no adapter.
func ProfileFor(lang models.Language) *Profile {
	switch lang {
	case models.LangPython:
		return pythonProfile()
	case models.LangJavaScript, models.LangTypeScript:
		return scriptProfile(lang)
	default:
		return nil
	}
}

func pythonProfile() *Profile {
	return &Profile{
		Language: models.LangPython,
		functionKinds: map[string]bool{
			"function_definition": true,
		},
		classKinds: map[string]bool{
			"class_definition": true,
		},
		methodKind: "function_definition",
		branchKinds: map[string]bool{
			"if_statement":     true,
			"elif_clause":      true,
			"while_statement":  true,
			"for_statement":    true,
			"with_statement":   true,
			"assert_statement": true,
			"except_clause":    true,
			"boolean_operator": true,
			"for_in_clause":    true, // comprehension generator
			"if_clause":        true, // comprehension filter
		},
		lineComment: "#",
		blockMarks:  [][2]string{{`"""`, `"""`}, {"'''", "'''"}},
		extraBranch: pythonTryBonus,
		hasDoc:      pythonDocstring,
		paramCount:  pythonParamCount,
		isGenerator: pythonIsGenerator,
		nameOf:      nameFieldOf,
	}
}

// pythonTryBonus mirrors the handler counting of the reference behavior: a
// try statement contributes one per handler plus one each for else and
// finally. Handlers additionally count through the flat branch table, so a
// try with one except adds two.
func pythonTryBonus(node *sitter.Node, kind string, _ []byte) int {
	if kind != "try_statement" {
		return 0
	}
	bonus := 0
	for i := range int(node.NamedChildCount()) {
		switch node.NamedChild(i).Type() {
		case "except_clause", "else_clause", "finally_clause":
			bonus++
		}
	}
	return bonus
}

// pythonDocstring reports whether the first statement of the body is a bare
// string expression.
func pythonDocstring(node *sitter.Node, _ []byte) bool {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	return first.NamedChild(0).Type() == "string"
}

// pythonParamCount counts declared positional parameters, including self.
// Splats and bare separators are not parameters.
func pythonParamCount(node *sitter.Node) int {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return 0
	}
	n := 0
	for i := range int(params.NamedChildCount()) {
		switch params.NamedChild(i).Type() {
		case "identifier", "typed_parameter", "default_parameter", "typed_default_parameter":
			n++
		}
	}
	return n
}

func pythonIsGenerator(node *sitter.Node, source []byte) bool {
	found := false
	parser.WalkTyped(node, source, func(_ *sitter.Node, kind string, _ []byte) bool {
		if kind == "yield" {
			found = true
		}
		return !found
	})
	return found
}

func scriptProfile(lang models.Language) *Profile {
	return &Profile{
		Language: lang,
		functionKinds: map[string]bool{
			"function_declaration":           true,
			"function":                       true,
			"function_expression":            true,
			"arrow_function":                 true,
			"generator_function":             true,
			"generator_function_declaration": true,
			"method_definition":              true,
		},
		classKinds: map[string]bool{
			"class_declaration": true,
			"class":             true,
		},
		methodKind: "method_definition",
		branchKinds: map[string]bool{
			"if_statement":     true,
			"while_statement":  true,
			"do_statement":     true,
			"for_statement":    true,
			"for_in_statement": true,
			"catch_clause":     true,
			"finally_clause":   true,
		},
		lineComment: "//",
		blockMarks:  [][2]string{{"/*", "*/"}},
		extraBranch: scriptBooleanBonus,
		hasDoc:      scriptDocComment,
		paramCount:  scriptParamCount,
		isGenerator: scriptIsGenerator,
		nameOf:      scriptNameOf,
	}
}

// scriptBooleanBonus counts short-circuit operators, which the grammar folds
// into plain binary expressions.
func scriptBooleanBonus(node *sitter.Node, kind string, source []byte) int {
	if kind != "binary_expression" {
		return 0
	}
	switch parser.GetNodeText(node.ChildByFieldName("operator"), source) {
	case "&&", "||", "??":
		return 1
	}
	return 0
}

// scriptDocComment reports whether a comment ends on the line directly above
// the declaration. For expressions bound to a name the enclosing statement
// is what the comment precedes.
func scriptDocComment(node *sitter.Node, source []byte) bool {
	stmt := node
	for stmt.Parent() != nil {
		kind := stmt.Parent().Type()
		if kind == "program" || kind == "statement_block" || kind == "class_body" {
			break
		}
		stmt = stmt.Parent()
	}
	prev := stmt.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return false
	}
	return prev.EndPoint().Row+1 == stmt.StartPoint().Row
}

func scriptParamCount(node *sitter.Node) int {
	if p := node.ChildByFieldName("parameter"); p != nil {
		return 1 // single-identifier arrow form
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return 0
	}
	n := 0
	for i := range int(params.NamedChildCount()) {
		switch params.NamedChild(i).Type() {
		case "rest_parameter", "comment":
		default:
			n++
		}
	}
	return n
}

func scriptIsGenerator(node *sitter.Node, source []byte) bool {
	switch node.Type() {
	case "generator_function", "generator_function_declaration":
		return true
	}
	found := false
	parser.WalkTyped(node, source, func(_ *sitter.Node, kind string, _ []byte) bool {
		if kind == "yield_expression" {
			found = true
		}
		return !found
	})
	return found
}

// scriptNameOf resolves a declaration name, falling back to the binding
// target for anonymous function expressions.
func scriptNameOf(node *sitter.Node, source []byte) string {
	if name := nameFieldOf(node, source); name != "" {
		return name
	}
	parent := node.Parent()
	if parent == nil {
		return ""
	}
	switch parent.Type() {
	case "variable_declarator":
		return parser.GetNodeText(parent.ChildByFieldName("name"), source)
	case "pair":
		return parser.GetNodeText(parent.ChildByFieldName("key"), source)
	case "assignment_expression":
		return parser.GetNodeText(parent.ChildByFieldName("left"), source)
	}
	return ""
}

func nameFieldOf(node *sitter.Node, source []byte) string {
	return parser.GetNodeText(node.ChildByFieldName("name"), source)
}
