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

// ----------------------------------------------------------------------------
// Statements.
type (
	// LetStmt binds a name to a value in a statement.
	LetStmt struct {
		Name  string
		Value Expr
		Body  Stmt
	}

	// AssertStmt fails at runtime with Message if Cond does not hold.
	AssertStmt struct {
		Cond    Expr
		Message Expr
	}

	// ProducerConsumer marks the production of a function (Produce)
	// followed by its consumption (Consume).
	ProducerConsumer struct {
		Name    string
		Produce Stmt
		Consume Stmt
	}

	// For is a loop over [Min, Min+Extent).
	For struct {
		Name        string
		Min, Extent Expr
		ForType     ForType
		Body        Stmt
	}

	// Store writes an element of a buffer.
	Store struct {
		Name  string
		Value Expr
		Index Expr
		Param *Parameter
	}

	// Provide writes values of a multi-dimensional function at a site.
	Provide struct {
		Name   string
		Values []Expr
		Args   []Expr
	}

	// Allocate allocates a buffer for the duration of Body.
	Allocate struct {
		Name       string
		Typ        Type
		Extents    []Expr
		Condition  Expr
		Body       Stmt
		MemoryType MemoryType
	}

	// Free releases an allocation.
	Free struct {
		Name string
	}

	// Realize allocates the storage of a multi-dimensional function
	// over Bounds for the duration of Body.
	Realize struct {
		Name      string
		Types     []Type
		Bounds    []Range
		Condition Expr
		Body      Stmt
	}

	// Block executes First then Rest.
	Block struct {
		First, Rest Stmt
	}

	// IfThenElse executes Then if Cond holds, Else otherwise.
	// Else may be nil.
	IfThenElse struct {
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// Evaluate evaluates an expression for its side effects.
	Evaluate struct {
		Value Expr
	}
)

var (
	_ Stmt = (*LetStmt)(nil)
	_ Stmt = (*AssertStmt)(nil)
	_ Stmt = (*ProducerConsumer)(nil)
	_ Stmt = (*For)(nil)
	_ Stmt = (*Store)(nil)
	_ Stmt = (*Provide)(nil)
	_ Stmt = (*Allocate)(nil)
	_ Stmt = (*Free)(nil)
	_ Stmt = (*Realize)(nil)
	_ Stmt = (*Block)(nil)
	_ Stmt = (*IfThenElse)(nil)
	_ Stmt = (*Evaluate)(nil)
)

func (*LetStmt) node()     {}
func (*LetStmt) stmtNode() {}

func (*AssertStmt) node()     {}
func (*AssertStmt) stmtNode() {}

func (*ProducerConsumer) node()     {}
func (*ProducerConsumer) stmtNode() {}

func (*For) node()     {}
func (*For) stmtNode() {}

func (*Store) node()     {}
func (*Store) stmtNode() {}

func (*Provide) node()     {}
func (*Provide) stmtNode() {}

func (*Allocate) node()     {}
func (*Allocate) stmtNode() {}

func (*Free) node()     {}
func (*Free) stmtNode() {}

func (*Realize) node()     {}
func (*Realize) stmtNode() {}

func (*Block) node()     {}
func (*Block) stmtNode() {}

func (*IfThenElse) node()     {}
func (*IfThenElse) stmtNode() {}

func (*Evaluate) node()     {}
func (*Evaluate) stmtNode() {}

// NewBlock chains statements into nested blocks.
// Nil statements are skipped. Returns nil if no statement remains.
func NewBlock(stmts ...Stmt) Stmt {
	var nonNil []Stmt
	for _, s := range stmts {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	result := nonNil[len(nonNil)-1]
	for i := len(nonNil) - 2; i >= 0; i-- {
		result = &Block{First: nonNil[i], Rest: result}
	}
	return result
}

// NoOp returns a statement doing nothing.
func NoOp() Stmt {
	return &Evaluate{Value: &IntImm{Value: 0, Typ: Int32Type()}}
}
