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

import "github.com/gx-org/hlsc/build/ir/irkind"

// ----------------------------------------------------------------------------
// Expressions.
type (
	// IntImm is a signed integer constant.
	IntImm struct {
		Value int64
		Typ   Type
	}

	// UIntImm is an unsigned integer constant.
	UIntImm struct {
		Value uint64
		Typ   Type
	}

	// FloatImm is a floating point constant.
	FloatImm struct {
		Value float64
		Typ   Type
	}

	// StringImm is a string constant.
	StringImm struct {
		Value string
	}

	// Variable is a reference to a named value:
	// a loop variable, a let binding, a parameter or a stream.
	Variable struct {
		Name string
		Typ  Type
		// Param is the pipeline parameter the variable refers to, if any.
		Param *Parameter
	}

	// Cast converts a value to another type.
	Cast struct {
		Typ Type
		X   Expr
	}

	// BinaryExpr is an expression with a binary operator.
	BinaryExpr struct {
		Op   BinaryOp
		X, Y Expr
	}

	// Not is a logical negation.
	Not struct {
		X Expr
	}

	// Select returns True if Cond holds, False otherwise.
	Select struct {
		Cond, True, False Expr
	}

	// Load reads an element of a buffer.
	Load struct {
		Name  string
		Typ   Type
		Index Expr
		Param *Parameter
	}

	// Call calls a function, an intrinsic or reads from an image.
	Call struct {
		Name     string
		Typ      Type
		Args     []Expr
		CallType CallType
		Param    *Parameter
	}

	// Let binds a name to a value inside an expression.
	Let struct {
		Name  string
		Value Expr
		Body  Expr
	}
)

var (
	_ Expr = (*IntImm)(nil)
	_ Expr = (*UIntImm)(nil)
	_ Expr = (*FloatImm)(nil)
	_ Expr = (*StringImm)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Cast)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*Not)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*Load)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Let)(nil)
)

// BinaryOp is a binary operator.
type BinaryOp int

// Binary operators.
const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
	EQ
	NE
	LT
	LE
	GT
	GE
	And
	Or
)

var binaryOpStrings = map[BinaryOp]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Mod: "%",
	Min: "min",
	Max: "max",
	EQ:  "==",
	NE:  "!=",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
	And: "&&",
	Or:  "||",
}

// String representation of the operator.
func (op BinaryOp) String() string {
	return binaryOpStrings[op]
}

// IsComparison returns true if the operator returns a boolean.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case EQ, NE, LT, LE, GT, GE, And, Or:
		return true
	}
	return false
}

// IsFunction returns true if the operator is printed as a function call.
func (op BinaryOp) IsFunction() bool {
	return op == Min || op == Max
}

// CallType is the kind of callee of a call.
type CallType int

// Types of call.
const (
	// Extern calls a C function.
	Extern CallType = iota
	// PureExtern calls a C function with no side effect.
	PureExtern
	// Intrinsic calls a compiler intrinsic.
	Intrinsic
	// Image reads from an input image.
	Image
	// Halide reads from the realization of another function.
	Halide
)

func (*IntImm) node()     {}
func (*IntImm) exprNode() {}

// Type of the constant.
func (e *IntImm) Type() Type { return e.Typ }

func (*UIntImm) node()     {}
func (*UIntImm) exprNode() {}

// Type of the constant.
func (e *UIntImm) Type() Type { return e.Typ }

func (*FloatImm) node()     {}
func (*FloatImm) exprNode() {}

// Type of the constant.
func (e *FloatImm) Type() Type { return e.Typ }

func (*StringImm) node()     {}
func (*StringImm) exprNode() {}

// Type of a string is always a string.
func (e *StringImm) Type() Type { return TypeFromKind(irkind.String) }

func (*Variable) node()     {}
func (*Variable) exprNode() {}

// Type of the variable.
func (e *Variable) Type() Type { return e.Typ }

func (*Cast) node()     {}
func (*Cast) exprNode() {}

// Type of the result of the conversion.
func (e *Cast) Type() Type { return e.Typ }

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// Type of the result. Comparisons return booleans with the lanes of their operands.
func (e *BinaryExpr) Type() Type {
	typ := e.X.Type()
	if e.Op.IsComparison() {
		return BoolType().WithLanes(typ.Lanes)
	}
	return typ
}

func (*Not) node()     {}
func (*Not) exprNode() {}

// Type of the result.
func (e *Not) Type() Type { return e.X.Type() }

func (*Select) node()     {}
func (*Select) exprNode() {}

// Type of the result.
func (e *Select) Type() Type { return e.True.Type() }

func (*Load) node()     {}
func (*Load) exprNode() {}

// Type of the element being loaded.
func (e *Load) Type() Type { return e.Typ }

func (*Call) node()     {}
func (*Call) exprNode() {}

// Type returned by the call.
func (e *Call) Type() Type { return e.Typ }

func (*Let) node()     {}
func (*Let) exprNode() {}

// Type of the body.
func (e *Let) Type() Type { return e.Body.Type() }

// Defined returns true if an expression is set.
// Schedules use nil expressions for values not specified by the user.
func Defined(e Expr) bool {
	return e != nil
}
