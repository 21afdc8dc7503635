package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mirelabs/mire/pkg/parser"
)

// BranchComplexity counts the branch paths through a function subtree. The
// base complexity is 1 and every branch point adds one. The walk does not
// stop at nested function boundaries, so inner functions count toward their
// enclosing function as well as toward themselves.
func (p *Profile) BranchComplexity(fn *sitter.Node, source []byte) int {
	complexity := 1
	parser.WalkTyped(fn, source, func(n *sitter.Node, kind string, src []byte) bool {
		if p.branchKinds[kind] {
			complexity++
		}
		if p.extraBranch != nil {
			complexity += p.extraBranch(n, kind, src)
		}
		return true
	})
	return complexity
}
