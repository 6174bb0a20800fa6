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

// Package irkind defines the scalar kinds of the IR.
package irkind

import "github.com/gx-org/backend/dtype"

// Kind of a scalar.
type Kind uint

// Kinds shared with the backend.
const (
	Invalid = Kind(dtype.Invalid)

	Bool     = Kind(dtype.Bool)
	Int32    = Kind(dtype.Int32)
	Int64    = Kind(dtype.Int64)
	Uint32   = Kind(dtype.Uint32)
	Uint64   = Kind(dtype.Uint64)
	Bfloat16 = Kind(dtype.Bfloat16)
	Float32  = Kind(dtype.Float32)
	Float64  = Kind(dtype.Float64)

	// Narrow integers used by image pipelines and hardware kernels.
	// The backend does not store them.
	Int8 = Kind(iota + dtype.MaxDataType)
	Int16
	Uint8
	Uint16
	Float16

	// Handle is an opaque pointer (buffers, streams).
	Handle
	// String is a compile time string.
	String
	// Void is the type of expressions returning nothing.
	Void

	// Max value for a Kind constant.
	Max
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case Bfloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Handle:
		return "handle"
	case String:
		return "string"
	case Void:
		return "void"
	}
	return "invalid"
}

// Bits returns the number of bits of a scalar of the kind.
// Returns 0 for kinds with no fixed size.
func (k Kind) Bits() int {
	if dt := k.DType(); dt != dtype.Invalid {
		return 8 * dtype.Sizeof(dt)
	}
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16, Float16:
		return 16
	case Handle:
		return 64
	}
	return 0
}

// CType returns the name of the C type storing a scalar of the kind.
func (k Kind) CType() string {
	switch k {
	case Bool:
		return "bool"
	case Int8:
		return "int8_t"
	case Int16:
		return "int16_t"
	case Int32:
		return "int32_t"
	case Int64:
		return "int64_t"
	case Uint8:
		return "uint8_t"
	case Uint16:
		return "uint16_t"
	case Uint32:
		return "uint32_t"
	case Uint64:
		return "uint64_t"
	case Float16, Bfloat16:
		return "uint16_t"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Handle:
		return "void *"
	case String:
		return "const char *"
	}
	return "void"
}

// DType converts a kind into a backend data type.
// Kinds the backend does not support return an invalid data type.
func (k Kind) DType() dtype.DataType {
	if k >= dtype.MaxDataType {
		return dtype.Invalid
	}
	return dtype.DataType(k)
}

// IsSigned returns true if the kind is a signed integer.
func IsSigned(k Kind) bool {
	return dtype.IsSigned(k.DType()) || k == Int8 || k == Int16
}

// IsUnsigned returns true if the kind is an unsigned integer.
func IsUnsigned(k Kind) bool {
	return dtype.IsUnsigned(k.DType()) || k == Uint8 || k == Uint16
}

// IsFloatKind returns true if the kind is a floating point number.
func IsFloatKind(k Kind) bool {
	return dtype.IsFloat(k.DType()) || k == Bfloat16 || k == Float16
}
