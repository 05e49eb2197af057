// Package transform rewrites generated application sources from
// blocking call style to context-aware call style.
package transform

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
)

// ParseSource parses Go source text into a file tree.
func ParseSource(filename string, src []byte) (*token.FileSet, *ast.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return fset, file, nil
}

// Source regenerates source text from a (possibly rewritten) file tree.
// Output is canonical gofmt formatting; the original layout is not
// preserved byte for byte.
func Source(fset *token.FileSet, file *ast.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("failed to render source: %w", err)
	}
	return buf.Bytes(), nil
}

// Result describes the outcome of processing one application source file.
type Result struct {
	Path    string
	Tools   int
	Changed bool
}

// ProcessFile reads an application source file, rewrites verb and
// HandleResponse calls inside its context-aware tool methods, and
// writes the regenerated source back in place. When discovery yields no
// tool functions the file is left untouched and Result.Tools is zero.
func ProcessFile(path string) (Result, error) {
	return rewriteFile(path, ConvertCalls)
}

// CtxifyFile reads an application source file, inserts a context.Context
// first parameter into every tool method lacking one, and writes the
// regenerated source back in place.
func CtxifyFile(path string) (Result, error) {
	return rewriteFile(path, AddContextParams)
}

func rewriteFile(path string, rewrite func(*ast.File, ToolSet) bool) (Result, error) {
	res := Result{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fset, file, err := ParseSource(path, src)
	if err != nil {
		return res, err
	}

	tools := DiscoverTools(file)
	res.Tools = len(tools)
	if res.Tools == 0 {
		return res, nil
	}

	res.Changed = rewrite(file, tools)

	out, err := Source(fset, file)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}
