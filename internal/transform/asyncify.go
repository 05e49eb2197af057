package transform

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"
)

// verbMethods are the request primitives on the base application that
// have context-aware counterparts. Nothing else matches; helpers like
// GetHeaders are left alone.
var verbMethods = map[string]bool{
	"Get":    true,
	"Post":   true,
	"Put":    true,
	"Delete": true,
	"Patch":  true,
}

const (
	handleResponseName = "HandleResponse"
	contextSuffix      = "Context"
)

// scope carries rewrite applicability down the traversal as an explicit
// value rather than mutable visitor state.
type scope struct {
	recv string // receiver identifier of the enclosing tool method
	ctx  string // name of its context.Context parameter
}

// ConvertCalls rewrites blocking verb calls and returned HandleResponse
// calls inside every context-aware tool method of the file:
//
//	a.Get(url, query)              -> a.GetContext(ctx, url, query)
//	return a.HandleResponse(resp)  -> return a.HandleResponseContext(ctx, resp)
//
// Methods that are not in the tool set, or that do not take a
// context.Context first parameter, are left untouched. Reports whether
// anything changed.
func ConvertCalls(file *ast.File, tools ToolSet) bool {
	changed := false
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		sc, ok := methodScope(fn, tools)
		if !ok {
			continue
		}
		if rewriteBody(fn.Body, sc) {
			changed = true
		}
	}
	return changed
}

// methodScope reports whether fn is a context-aware tool method and, if
// so, the receiver and context parameter names the rewrite substitutes.
func methodScope(fn *ast.FuncDecl, tools ToolSet) (scope, bool) {
	if fn.Recv == nil || fn.Body == nil || !tools.Contains(fn.Name.Name) {
		return scope{}, false
	}
	if len(fn.Recv.List) != 1 || len(fn.Recv.List[0].Names) != 1 {
		return scope{}, false
	}
	params := fn.Type.Params
	if params == nil || len(params.List) == 0 {
		return scope{}, false
	}
	first := params.List[0]
	if !isContextType(first.Type) || len(first.Names) == 0 {
		return scope{}, false
	}
	return scope{
		recv: fn.Recv.List[0].Names[0].Name,
		ctx:  first.Names[0].Name,
	}, true
}

func isContextType(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "context" && sel.Sel.Name == "Context"
}

// rewriteBody applies the two rewrite rules to one method body. The
// post hook runs bottom-up, so calls nested inside other expressions
// are still caught. Function literals are never tool methods; entering
// one leaves the rewrite scope, so their subtrees are skipped entirely.
func rewriteBody(body *ast.BlockStmt, sc scope) bool {
	changed := false
	astutil.Apply(body,
		func(c *astutil.Cursor) bool {
			_, isLit := c.Node().(*ast.FuncLit)
			return !isLit
		},
		func(c *astutil.Cursor) bool {
			switch n := c.Node().(type) {
			case *ast.ReturnStmt:
				if rewriteReturn(n, sc) {
					changed = true
				}
			case *ast.CallExpr:
				if rewriteCall(n, sc) {
					changed = true
				}
			}
			return true
		})
	return changed
}

// rewriteCall renames a verb call on the receiver to its context-aware
// counterpart and threads the context argument through. All other
// arguments are untouched.
func rewriteCall(call *ast.CallExpr, sc scope) bool {
	sel, ok := receiverSelector(call, sc.recv)
	if !ok || !verbMethods[sel.Sel.Name] {
		return false
	}
	sel.Sel.Name += contextSuffix
	call.Args = append([]ast.Expr{ast.NewIdent(sc.ctx)}, call.Args...)
	return true
}

// rewriteReturn handles the dedicated case of a return statement whose
// sole result is a HandleResponse call on the receiver. Other return
// statements pass through unchanged.
func rewriteReturn(ret *ast.ReturnStmt, sc scope) bool {
	if len(ret.Results) != 1 {
		return false
	}
	call, ok := ret.Results[0].(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := receiverSelector(call, sc.recv)
	if !ok || sel.Sel.Name != handleResponseName {
		return false
	}
	sel.Sel.Name += contextSuffix
	call.Args = append([]ast.Expr{ast.NewIdent(sc.ctx)}, call.Args...)
	return true
}

// receiverSelector matches call expressions of the shape recv.Name(...)
// where recv is the enclosing method's receiver identifier.
func receiverSelector(call *ast.CallExpr, recv string) (*ast.SelectorExpr, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, false
	}
	base, ok := sel.X.(*ast.Ident)
	if !ok || base.Name != recv {
		return nil, false
	}
	return sel, true
}
