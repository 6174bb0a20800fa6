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

// Package irhelper provides helper functions to build IR programmatically.
package irhelper

import (
	"github.com/gx-org/hlsc/build/ir"
)

// Var returns a reference to a variable.
func Var(name string, typ ir.Type) *ir.Variable {
	return &ir.Variable{Name: name, Typ: typ}
}

// IntVar returns a reference to a 32-bit integer variable.
func IntVar(name string) *ir.Variable {
	return Var(name, ir.Int32Type())
}

// Int returns a 32-bit integer constant.
func Int(v int64) *ir.IntImm {
	return &ir.IntImm{Value: v, Typ: ir.Int32Type()}
}

// Uint8 returns an unsigned 8-bit integer constant.
func Uint8(v uint64) *ir.UIntImm {
	return &ir.UIntImm{Value: v, Typ: ir.Uint8Type()}
}

// Float returns a 32-bit floating point constant.
func Float(v float64) *ir.FloatImm {
	return &ir.FloatImm{Value: v, Typ: ir.Float32Type()}
}

// Binary returns a binary expression.
func Binary(op ir.BinaryOp, x, y ir.Expr) *ir.BinaryExpr {
	return &ir.BinaryExpr{Op: op, X: x, Y: y}
}

// Intrinsic returns a call to a compiler intrinsic.
func Intrinsic(name string, typ ir.Type, args ...ir.Expr) *ir.Call {
	return &ir.Call{Name: name, Typ: typ, Args: args, CallType: ir.Intrinsic}
}

// Extern returns a call to an external function.
func Extern(name string, typ ir.Type, args ...ir.Expr) *ir.Call {
	return &ir.Call{Name: name, Typ: typ, Args: args, CallType: ir.Extern}
}

// Eval returns a statement evaluating an expression.
func Eval(x ir.Expr) *ir.Evaluate {
	return &ir.Evaluate{Value: x}
}

// Block returns a block of statements.
func Block(stmts ...ir.Stmt) ir.Stmt {
	return ir.NewBlock(stmts...)
}

// For returns a serial loop over [0, extent).
func For(name string, extent ir.Expr, body ir.Stmt) *ir.For {
	return &ir.For{
		Name:    name,
		Min:     Int(0),
		Extent:  extent,
		ForType: ir.Serial,
		Body:    body,
	}
}

// Range returns a range starting at 0.
func Range(extent int64) ir.Range {
	return ir.Range{Min: Int(0), Extent: Int(extent)}
}

// Realize returns a realization of a single-valued function.
func Realize(name string, typ ir.Type, body ir.Stmt, bounds ...ir.Range) *ir.Realize {
	return &ir.Realize{
		Name:   name,
		Types:  []ir.Type{typ},
		Bounds: bounds,
		Body:   body,
	}
}

// Store returns a store into a buffer.
func Store(buffer string, index, value ir.Expr) *ir.Store {
	return &ir.Store{Name: buffer, Index: index, Value: value}
}

// Load returns a load from a buffer.
func Load(buffer string, typ ir.Type, index ir.Expr) *ir.Load {
	return &ir.Load{Name: buffer, Typ: typ, Index: index}
}
