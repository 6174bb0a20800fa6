// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

type (
	// Visitor is called on every node of a tree by Inspect.
	// Children of a node are not visited if the visitor returns false.
	Visitor func(Node) bool

	// Mutator rewrites an expression.
	Mutator interface {
		Mutate(Expr) Expr
	}

	// MutatorFunc is a function implementing the Mutator interface.
	MutatorFunc func(Expr) Expr
)

// Mutate calls the function.
func (f MutatorFunc) Mutate(e Expr) Expr {
	return f(e)
}

// Inspect traverses a tree in depth-first order, calling visit on every
// node before its children. Nil nodes are skipped.
func Inspect(node Node, visit Visitor) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *IntImm, *UIntImm, *FloatImm, *StringImm, *Variable, *Free:
	case *Cast:
		inspectExprs(visit, n.X)
	case *BinaryExpr:
		inspectExprs(visit, n.X, n.Y)
	case *Not:
		inspectExprs(visit, n.X)
	case *Select:
		inspectExprs(visit, n.Cond, n.True, n.False)
	case *Load:
		inspectExprs(visit, n.Index)
	case *Call:
		inspectExprs(visit, n.Args...)
	case *Let:
		inspectExprs(visit, n.Value, n.Body)
	case *LetStmt:
		inspectExprs(visit, n.Value)
		inspectStmts(visit, n.Body)
	case *AssertStmt:
		inspectExprs(visit, n.Cond, n.Message)
	case *ProducerConsumer:
		inspectStmts(visit, n.Produce, n.Consume)
	case *For:
		inspectExprs(visit, n.Min, n.Extent)
		inspectStmts(visit, n.Body)
	case *Store:
		inspectExprs(visit, n.Value, n.Index)
	case *Provide:
		inspectExprs(visit, n.Values...)
		inspectExprs(visit, n.Args...)
	case *Allocate:
		inspectExprs(visit, n.Extents...)
		inspectExprs(visit, n.Condition)
		inspectStmts(visit, n.Body)
	case *Realize:
		for _, r := range n.Bounds {
			inspectExprs(visit, r.Min, r.Extent)
		}
		inspectExprs(visit, n.Condition)
		inspectStmts(visit, n.Body)
	case *Block:
		inspectStmts(visit, n.First, n.Rest)
	case *IfThenElse:
		inspectExprs(visit, n.Cond)
		inspectStmts(visit, n.Then, n.Else)
	case *Evaluate:
		inspectExprs(visit, n.Value)
	}
}

func inspectExprs(visit Visitor, exprs ...Expr) {
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		Inspect(expr, visit)
	}
}

func inspectStmts(visit Visitor, stmts ...Stmt) {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		Inspect(stmt, visit)
	}
}

// Rewrite rebuilds an expression bottom-up: the children of a node are
// rewritten first, then f is applied to the node with its new children.
// Returns nil if expr is nil.
func Rewrite(expr Expr, f func(Expr) Expr) Expr {
	if expr == nil {
		return nil
	}
	var r Expr
	switch e := expr.(type) {
	case *IntImm, *UIntImm, *FloatImm, *StringImm, *Variable:
		r = e
	case *Cast:
		r = &Cast{Typ: e.Typ, X: Rewrite(e.X, f)}
	case *BinaryExpr:
		r = &BinaryExpr{Op: e.Op, X: Rewrite(e.X, f), Y: Rewrite(e.Y, f)}
	case *Not:
		r = &Not{X: Rewrite(e.X, f)}
	case *Select:
		r = &Select{Cond: Rewrite(e.Cond, f), True: Rewrite(e.True, f), False: Rewrite(e.False, f)}
	case *Load:
		r = &Load{Name: e.Name, Typ: e.Typ, Index: Rewrite(e.Index, f), Param: e.Param}
	case *Call:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Rewrite(arg, f)
		}
		r = &Call{Name: e.Name, Typ: e.Typ, Args: args, CallType: e.CallType, Param: e.Param}
	case *Let:
		r = &Let{Name: e.Name, Value: Rewrite(e.Value, f), Body: Rewrite(e.Body, f)}
	default:
		r = e
	}
	return f(r)
}

// RewriteStmt rebuilds a statement bottom-up, calling f on every statement
// once its children have been rebuilt. Expressions are shared with the
// original tree. Returns nil if stmt is nil.
func RewriteStmt(stmt Stmt, f func(Stmt) Stmt) Stmt {
	if stmt == nil {
		return nil
	}
	var r Stmt
	switch s := stmt.(type) {
	case *LetStmt:
		r = &LetStmt{Name: s.Name, Value: s.Value, Body: RewriteStmt(s.Body, f)}
	case *ProducerConsumer:
		r = &ProducerConsumer{
			Name:    s.Name,
			Produce: RewriteStmt(s.Produce, f),
			Consume: RewriteStmt(s.Consume, f),
		}
	case *For:
		r = &For{
			Name:    s.Name,
			Min:     s.Min,
			Extent:  s.Extent,
			ForType: s.ForType,
			Body:    RewriteStmt(s.Body, f),
		}
	case *Allocate:
		alloc := *s
		alloc.Body = RewriteStmt(s.Body, f)
		r = &alloc
	case *Realize:
		realize := *s
		realize.Body = RewriteStmt(s.Body, f)
		r = &realize
	case *Block:
		r = &Block{First: RewriteStmt(s.First, f), Rest: RewriteStmt(s.Rest, f)}
	case *IfThenElse:
		r = &IfThenElse{Cond: s.Cond, Then: RewriteStmt(s.Then, f), Else: RewriteStmt(s.Else, f)}
	default:
		r = s
	}
	return f(r)
}
