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

package irkind_test

import (
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/hlsc/build/ir/irkind"
)

func TestDType(t *testing.T) {
	tests := []struct {
		kind irkind.Kind
		want dtype.DataType
	}{
		{kind: irkind.Int32, want: dtype.Int32},
		{kind: irkind.Float32, want: dtype.Float32},
		{kind: irkind.Uint8, want: dtype.Invalid},
		{kind: irkind.Handle, want: dtype.Invalid},
	}
	for _, test := range tests {
		if got := test.kind.DType(); got != test.want {
			t.Errorf("%v.DType() = %v but want %v", test.kind, got, test.want)
		}
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		kind irkind.Kind
		bits int
		c    string
	}{
		{kind: irkind.Uint8, bits: 8, c: "uint8_t"},
		{kind: irkind.Int16, bits: 16, c: "int16_t"},
		{kind: irkind.Int64, bits: 64, c: "int64_t"},
		{kind: irkind.Bfloat16, bits: 16, c: "uint16_t"},
		{kind: irkind.Float32, bits: 32, c: "float"},
		{kind: irkind.Bool, bits: 8, c: "bool"},
		{kind: irkind.Handle, bits: 64, c: "void *"},
		{kind: irkind.Void, bits: 0, c: "void"},
	}
	for _, test := range tests {
		if got := test.kind.Bits(); got != test.bits {
			t.Errorf("%v.Bits() = %d but want %d", test.kind, got, test.bits)
		}
		if got := test.kind.CType(); got != test.c {
			t.Errorf("%v.CType() = %q but want %q", test.kind, got, test.c)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		kind                      irkind.Kind
		signed, unsigned, isFloat bool
	}{
		{kind: irkind.Int8, signed: true},
		{kind: irkind.Int32, signed: true},
		{kind: irkind.Int64, signed: true},
		{kind: irkind.Uint16, unsigned: true},
		{kind: irkind.Uint64, unsigned: true},
		{kind: irkind.Float16, isFloat: true},
		{kind: irkind.Bfloat16, isFloat: true},
		{kind: irkind.Float64, isFloat: true},
		{kind: irkind.Bool},
		{kind: irkind.Handle},
	}
	for _, test := range tests {
		if got := irkind.IsSigned(test.kind); got != test.signed {
			t.Errorf("IsSigned(%v) = %v but want %v", test.kind, got, test.signed)
		}
		if got := irkind.IsUnsigned(test.kind); got != test.unsigned {
			t.Errorf("IsUnsigned(%v) = %v but want %v", test.kind, got, test.unsigned)
		}
		if got := irkind.IsFloatKind(test.kind); got != test.isFloat {
			t.Errorf("IsFloatKind(%v) = %v but want %v", test.kind, got, test.isFloat)
		}
	}
}
