package transform

import (
	"fmt"
	"go/ast"
	"os"
)

// InternalCall records a call from one tool method to another through
// the receiver. Tool methods are meant to be independent one-shot
// operations; chains between them usually indicate a method that should
// have been a private helper instead.
type InternalCall struct {
	Caller string
	Callee string
}

func (c InternalCall) String() string {
	return fmt.Sprintf("%s -> %s", c.Caller, c.Callee)
}

// FindInternalCalls reports every call from a tool method to a
// different tool method on the same receiver. Self-recursion is not
// reported.
func FindInternalCalls(file *ast.File, tools ToolSet) []InternalCall {
	var calls []InternalCall
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Body == nil || !tools.Contains(fn.Name.Name) {
			continue
		}
		if len(fn.Recv.List) != 1 || len(fn.Recv.List[0].Names) != 1 {
			continue
		}
		recv := fn.Recv.List[0].Names[0].Name
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := receiverSelector(call, recv)
			if !ok {
				return true
			}
			if name := sel.Sel.Name; tools.Contains(name) && name != fn.Name.Name {
				calls = append(calls, InternalCall{Caller: fn.Name.Name, Callee: name})
			}
			return true
		})
	}
	return calls
}

// CheckFile parses path and reports internal tool-to-tool calls. The
// file is never modified.
func CheckFile(path string) ([]InternalCall, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	_, file, err := ParseSource(path, src)
	if err != nil {
		return nil, err
	}
	tools := DiscoverTools(file)
	if len(tools) == 0 {
		return nil, nil
	}
	return FindInternalCalls(file, tools), nil
}
