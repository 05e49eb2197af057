package transform

import (
	"go/ast"
	"go/token"
	"testing"
)

// fileTree bundles a parsed fixture with its file set so tests can
// rewrite and re-render it.
type fileTree struct {
	fset *token.FileSet
	file *ast.File
}

func (ft *fileTree) source(t *testing.T) string {
	t.Helper()
	out, err := Source(ft.fset, ft.file)
	if err != nil {
		t.Fatalf("failed to render source: %v", err)
	}
	return string(out)
}

// convert parses src, runs discovery and the call rewriter, and returns
// the regenerated source text.
func convert(t *testing.T, src string) string {
	t.Helper()
	tree := mustParse(t, src)
	ConvertCalls(tree.file, DiscoverTools(tree.file))
	return tree.source(t)
}
