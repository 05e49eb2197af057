package transform

import (
	"go/ast"
	"sort"
)

// listToolsName is the method every generated application implements to
// enumerate its externally exposed tool methods.
const listToolsName = "ListTools"

// ToolSet holds the method names exposed through ListTools. Membership
// testing is the only operation the rewriters perform on it.
type ToolSet map[string]struct{}

// Contains reports whether name is an exposed tool method.
func (s ToolSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the tool names in sorted order.
func (s ToolSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DiscoverTools scans a parsed file for ListTools methods and collects
// the names selected in their returned slice literals. Every element of
// the literal that is a selector expression (a.SomeMethod) contributes
// its selected name. The scan degrades to an empty set on any
// structural mismatch; it never errors.
func DiscoverTools(file *ast.File) ToolSet {
	tools := ToolSet{}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Body == nil || fn.Name.Name != listToolsName {
			continue
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				return true
			}
			lit, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return true
			}
			if _, ok := lit.Type.(*ast.ArrayType); !ok {
				return true
			}
			for _, elt := range lit.Elts {
				if sel, ok := elt.(*ast.SelectorExpr); ok {
					tools[sel.Sel.Name] = struct{}{}
				}
			}
			return true
		})
	}
	return tools
}
