package transform

import (
	"go/ast"
	"go/token"
)

// AddContextParams inserts a `ctx context.Context` first parameter into
// every tool method that does not already take one. It is the signature
// half of the conversion pipeline and runs before ConvertCalls, which
// only rewrites bodies of methods that are already context-aware.
// Idempotent: methods with a leading context parameter are skipped.
func AddContextParams(file *ast.File, tools ToolSet) bool {
	changed := false
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || !tools.Contains(fn.Name.Name) {
			continue
		}
		params := fn.Type.Params
		if params == nil {
			params = &ast.FieldList{}
			fn.Type.Params = params
		}
		if len(params.List) > 0 && isContextType(params.List[0].Type) {
			continue
		}
		field := &ast.Field{
			Names: []*ast.Ident{ast.NewIdent("ctx")},
			Type: &ast.SelectorExpr{
				X:   ast.NewIdent("context"),
				Sel: ast.NewIdent("Context"),
			},
		}
		params.List = append([]*ast.Field{field}, params.List...)
		changed = true
	}
	if changed {
		ensureImport(file, "context")
	}
	return changed
}

// ensureImport adds a plain import of path to the file's first import
// block if it is not already present.
func ensureImport(file *ast.File, path string) {
	quoted := "\"" + path + "\""
	for _, imp := range file.Imports {
		if imp.Path.Value == quoted {
			return
		}
	}
	spec := &ast.ImportSpec{
		Path: &ast.BasicLit{Kind: token.STRING, Value: quoted},
	}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}
		if !gen.Lparen.IsValid() {
			// Force the parenthesized form so the printer accepts a
			// second spec in a previously single-import declaration.
			gen.Lparen = gen.TokPos
		}
		gen.Specs = append(gen.Specs, spec)
		file.Imports = append(file.Imports, spec)
		return
	}
	gen := &ast.GenDecl{Tok: token.IMPORT, Specs: []ast.Spec{spec}}
	file.Decls = append([]ast.Decl{gen}, file.Decls...)
	file.Imports = append(file.Imports, spec)
}
