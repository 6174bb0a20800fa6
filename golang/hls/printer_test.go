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

package hls_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/gx-org/hlsc/build/ir/irhelper"
	"github.com/gx-org/hlsc/golang/hls"
)

func TestPrintName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{name: "x", want: "x"},
		{name: "in.stream", want: "in_stream"},
		{name: "f.s0.x", want: "f_s0_x"},
		{name: "_hls_target.f", want: "_hls_target_f"},
		{name: "0x", want: "_0x"},
		{name: "a-b$c", want: "a_b_c"},
	}
	for _, test := range tests {
		if got := hls.PrintName(test.name); got != test.want {
			t.Errorf("PrintName(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestPrintExpr(t *testing.T) {
	tests := []struct {
		expr ir.Expr
		want string
	}{
		{
			expr: irhelper.Int(-3),
			want: "-3",
		},
		{
			expr: &ir.IntImm{Value: 1, Typ: ir.BoolType()},
			want: "true",
		},
		{
			expr: &ir.IntImm{Value: 7, Typ: ir.Int64Type()},
			want: "(int64_t)7",
		},
		{
			expr: &ir.IntImm{Value: -2, Typ: ir.Int16Type()},
			want: "(int16_t)-2",
		},
		{
			expr: irhelper.Uint8(255),
			want: "(uint8_t)255",
		},
		{
			expr: irhelper.Float(2),
			want: "2.0f",
		},
		{
			expr: irhelper.Float(0.5),
			want: "0.5f",
		},
		{
			expr: &ir.FloatImm{Value: 1.5, Typ: ir.Float64Type()},
			want: "(double)1.5",
		},
		{
			expr: &ir.FloatImm{Value: math.Inf(-1), Typ: ir.Float32Type()},
			want: "-INFINITY",
		},
		{
			expr: &ir.StringImm{Value: "a \"b\""},
			want: `"a \"b\""`,
		},
		{
			expr: irhelper.Binary(ir.Add, irhelper.IntVar("f.s0.x"), irhelper.Int(1)),
			want: "(f_s0_x + 1)",
		},
		{
			expr: irhelper.Binary(ir.Max, irhelper.IntVar("a"), irhelper.IntVar("b")),
			want: "max(a, b)",
		},
		{
			expr: &ir.Cast{Typ: ir.Uint16Type(), X: irhelper.IntVar("a")},
			want: "(uint16_t)(a)",
		},
		{
			expr: &ir.Not{X: irhelper.Binary(ir.LT, irhelper.IntVar("a"), irhelper.Int(0))},
			want: "!((a < 0))",
		},
		{
			expr: &ir.Select{
				Cond:  irhelper.Binary(ir.GT, irhelper.IntVar("a"), irhelper.IntVar("thresh")),
				True:  irhelper.Uint8(255),
				False: irhelper.Uint8(0),
			},
			want: "((a > thresh) ? (uint8_t)255 : (uint8_t)0)",
		},
		{
			expr: irhelper.Load("img", ir.Uint8Type(), irhelper.IntVar("i")),
			want: "img[i]",
		},
		{
			expr: &ir.Call{
				Name:     "in.stencil",
				Typ:      ir.Uint8Type(),
				Args:     []ir.Expr{irhelper.Int(0), irhelper.Int(1)},
				CallType: ir.Halide,
			},
			want: "in_stencil(0, 1)",
		},
		{
			expr: &ir.Let{Name: "t", Value: irhelper.IntVar("a"), Body: irhelper.Binary(ir.Mul, irhelper.IntVar("t"), irhelper.IntVar("t"))},
			want: "({ const int32_t t = a; (t * t); })",
		},
		{
			expr: irhelper.Intrinsic("create_kbuf", ir.HandleType()),
			want: "create_kbuf()",
		},
	}
	p := hls.NewPrinter(hls.DefaultConfig())
	for _, test := range tests {
		if got := p.PrintExpr(test.expr); got != test.want {
			t.Errorf("PrintExpr(%s) = %q, want %q", test.expr, got, test.want)
		}
	}
}

func TestPrintStmt(t *testing.T) {
	var body ir.Stmt = irhelper.Realize("f.stencil", ir.Uint8Type(),
		&ir.For{
			Name:    "f.s0.x",
			Min:     irhelper.Int(0),
			Extent:  irhelper.Int(4),
			ForType: ir.Unrolled,
			Body: &ir.Provide{
				Name:   "f.stencil",
				Values: []ir.Expr{irhelper.Uint8(1)},
				Args:   []ir.Expr{irhelper.IntVar("f.s0.x")},
			},
		},
		irhelper.Range(4),
	)
	body = irhelper.Block(
		&ir.Allocate{
			Name:       "buf",
			Typ:        ir.Int32Type(),
			Extents:    []ir.Expr{irhelper.Int(2), irhelper.IntVar("n")},
			MemoryType: ir.Heap,
			Body: irhelper.Block(
				body,
				&ir.IfThenElse{
					Cond: irhelper.Binary(ir.EQ, irhelper.IntVar("n"), irhelper.Int(0)),
					Then: irhelper.Store("buf", irhelper.Int(0), irhelper.Int(1)),
					Else: irhelper.Eval(irhelper.Extern("halt", ir.VoidType())),
				},
				&ir.Free{Name: "buf"},
			),
		},
		irhelper.Eval(irhelper.Int(0)),
	)
	want := `
int32_t *buf = new int32_t[2 * n];
Stencil<uint8_t, 4> f_stencil;
for (int f_s0_x = 0; f_s0_x < 0 + 4; f_s0_x++) {
  #pragma HLS UNROLL
  f_stencil(f_s0_x) = (uint8_t)1;
}
if ((n == 0)) {
  buf[0] = 1;
} else {
  halt();
}
delete[] buf;
`
	p := hls.NewPrinter(hls.DefaultConfig())
	if err := p.PrintStmt(body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(strings.TrimPrefix(want, "\n"), p.String()); diff != "" {
		t.Errorf("unexpected code (-want +got):\n%s", diff)
	}
}

func TestPrinterStencilScope(t *testing.T) {
	use := &ir.Evaluate{Value: irhelper.Var("f.stream", ir.HandleType())}
	body := irhelper.Realize("f.stream", ir.Uint8Type(), use, irhelper.Range(2), irhelper.Range(2))
	p := hls.NewPrinter(hls.DefaultConfig())
	if err := p.PrintStmt(body); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Stencils().Find("f.stream"); ok {
		t.Errorf("f.stream still in scope after its realization")
	}
	want := "hls::stream<PackedStencil<uint8_t, 2, 2> > f_stream;\n(void)f_stream;\n"
	if got := p.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeclareStencilTwice(t *testing.T) {
	p := hls.NewPrinter(hls.DefaultConfig())
	if err := p.DeclareStencil("f.stream", stencil1D); err != nil {
		t.Fatal(err)
	}
	if err := p.DeclareStencil("f.stream", stencil1D); err == nil {
		t.Errorf("expected an error when declaring f.stream twice")
	}
}

func TestPrinterReset(t *testing.T) {
	p := hls.NewPrinter(hls.DefaultConfig())
	if err := p.DeclareStencil("f.stream", stencil1D); err != nil {
		t.Fatal(err)
	}
	alloc := &ir.Allocate{
		Name:       "buf",
		Typ:        ir.Uint8Type(),
		MemoryType: ir.Heap,
		Extents:    []ir.Expr{irhelper.Int(4)},
		Body:       ir.NoOp(),
	}
	if err := p.PrintStmt(alloc); err != nil {
		t.Fatal(err)
	}
	p.Reset()
	if got := p.String(); got != "" {
		t.Errorf("code not discarded: %q", got)
	}
	if _, ok := p.Stencils().Find("f.stream"); ok {
		t.Errorf("f.stream still declared after a reset")
	}
	if err := p.DeclareStencil("f.stream", stencil1D); err != nil {
		t.Errorf("cannot declare f.stream after a reset: %v", err)
	}
	mustPanic(t, "free after reset", func() {
		p.PrintStmt(&ir.Free{Name: "buf"})
	})
}

func TestPrinterErrors(t *testing.T) {
	tests := []struct {
		name string
		stmt ir.Stmt
	}{
		{
			name: "realize buffer",
			stmt: irhelper.Realize("f", ir.Uint8Type(), nil, irhelper.Range(2)),
		},
		{
			name: "free unknown",
			stmt: &ir.Free{Name: "unknown"},
		},
		{
			name: "provide tuple",
			stmt: &ir.Provide{Name: "f.stencil", Values: []ir.Expr{irhelper.Int(0), irhelper.Int(1)}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := hls.NewPrinter(hls.DefaultConfig())
			mustPanic(t, test.name, func() {
				p.PrintStmt(test.stmt)
			})
		})
	}
}

func TestPrintLiteralTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expr
	}{
		{
			name: "unsigned integer",
			expr: &ir.IntImm{Value: 1, Typ: ir.Uint8Type()},
		},
		{
			name: "signed unsigned",
			expr: &ir.UIntImm{Value: 1, Typ: ir.Int32Type()},
		},
		{
			name: "integer float",
			expr: &ir.FloatImm{Value: 1, Typ: ir.Int32Type()},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := hls.NewPrinter(hls.DefaultConfig())
			mustPanic(t, test.name, func() {
				p.PrintExpr(test.expr)
			})
		})
	}
}
