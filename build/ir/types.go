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

// Package ir is the loop-nest Intermediate Representation (IR) consumed by
// the scheduling and hardware code generation passes.
//
// Nodes are plain structures. Passes dispatch over them with type switches
// (see Inspect, Rewrite and RewriteStmt).
package ir

import (
	"fmt"

	"github.com/gx-org/hlsc/build/ir/irkind"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()
	}

	// Expr is an expression that returns a (typed) result.
	Expr interface {
		Node
		// exprNode marks a structure as an expression.
		exprNode()
		Type() Type
		String() string
	}

	// Stmt is a statement that performs an action.
	// No value is being returned.
	Stmt interface {
		Node
		// stmtNode marks a structure as a statement.
		stmtNode()
		String() string
	}
)

// Type of a scalar or a vector of scalars.
type Type struct {
	Kind  irkind.Kind
	Lanes int
}

// TypeFromKind returns a scalar type given its kind.
func TypeFromKind(kind irkind.Kind) Type {
	return Type{Kind: kind, Lanes: 1}
}

// BoolType returns the boolean type.
func BoolType() Type { return TypeFromKind(irkind.Bool) }

// Int8Type returns the signed 8-bit integer type.
func Int8Type() Type { return TypeFromKind(irkind.Int8) }

// Int16Type returns the signed 16-bit integer type.
func Int16Type() Type { return TypeFromKind(irkind.Int16) }

// Int32Type returns the signed 32-bit integer type.
func Int32Type() Type { return TypeFromKind(irkind.Int32) }

// Int64Type returns the signed 64-bit integer type.
func Int64Type() Type { return TypeFromKind(irkind.Int64) }

// Uint8Type returns the unsigned 8-bit integer type.
func Uint8Type() Type { return TypeFromKind(irkind.Uint8) }

// Uint16Type returns the unsigned 16-bit integer type.
func Uint16Type() Type { return TypeFromKind(irkind.Uint16) }

// Uint32Type returns the unsigned 32-bit integer type.
func Uint32Type() Type { return TypeFromKind(irkind.Uint32) }

// Float32Type returns the 32-bit floating point type.
func Float32Type() Type { return TypeFromKind(irkind.Float32) }

// Float64Type returns the 64-bit floating point type.
func Float64Type() Type { return TypeFromKind(irkind.Float64) }

// HandleType returns the type of opaque pointers.
func HandleType() Type { return TypeFromKind(irkind.Handle) }

// VoidType returns the type of expressions with no value.
func VoidType() Type { return TypeFromKind(irkind.Void) }

// WithLanes returns the same scalar type with a different number of lanes.
func (t Type) WithLanes(lanes int) Type {
	t.Lanes = lanes
	return t
}

// Defined returns true if the type has been set.
func (t Type) Defined() bool {
	return t.Kind != irkind.Invalid
}

// IsVector returns true if the type has more than one lane.
func (t Type) IsVector() bool {
	return t.Lanes > 1
}

// Bits returns the number of bits of one lane.
func (t Type) Bits() int {
	return t.Kind.Bits()
}

// CType returns the C type storing a value of type t.
func (t Type) CType() string {
	if t.IsVector() {
		return fmt.Sprintf("%sx%d", t.Kind.String(), t.Lanes)
	}
	return t.Kind.CType()
}

// String representation of the type.
func (t Type) String() string {
	if t.IsVector() {
		return fmt.Sprintf("%sx%d", t.Kind.String(), t.Lanes)
	}
	return t.Kind.String()
}

// Range is a [Min, Min+Extent) interval.
type Range struct {
	Min, Extent Expr
}

// Parameter is a scalar or buffer parameter of a pipeline.
type Parameter struct {
	Name     string
	Typ      Type
	IsBuffer bool
	// Dimensions of a buffer parameter.
	Dimensions int
}

// ForType is the way a loop is executed.
type ForType int

// Loop execution types.
const (
	Serial ForType = iota
	Parallel
	Vectorized
	Unrolled
	Pipelined
)

// String representation of the loop type.
func (f ForType) String() string {
	switch f {
	case Serial:
		return "for"
	case Parallel:
		return "parallel"
	case Vectorized:
		return "vectorized"
	case Unrolled:
		return "unrolled"
	case Pipelined:
		return "pipelined"
	}
	return fmt.Sprintf("ForType(%d)", int(f))
}

// IsParallel returns true if iterations of the loop may run concurrently.
func (f ForType) IsParallel() bool {
	return f == Parallel || f == Vectorized
}

// MemoryType is where an allocation lives.
type MemoryType int

// Memory types of an allocation.
const (
	// Heap is an ordinary host allocation.
	Heap MemoryType = iota
	// Stack is a host allocation on the stack.
	Stack
	// KernelBuffer is a buffer shared with a hardware kernel.
	// It requires a platform specific allocator.
	KernelBuffer
)

// String representation of the memory type.
func (m MemoryType) String() string {
	switch m {
	case Heap:
		return "heap"
	case Stack:
		return "stack"
	case KernelBuffer:
		return "kernel_buffer"
	}
	return fmt.Sprintf("MemoryType(%d)", int(m))
}
