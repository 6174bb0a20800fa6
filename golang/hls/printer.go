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

package hls

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/hlsc/base/stringseq"
	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/gx-org/hlsc/build/ir/irkind"
	"github.com/gx-org/hlsc/internal/base/scope"
	"github.com/pkg/errors"
)

// overrides replaces how some nodes are printed.
// A node is printed by the Printer if the override returns false.
type overrides interface {
	printStmt(ir.Stmt) (bool, error)
	printExpr(ir.Expr) (string, bool)
}

// Printer prints statements and expressions as C++ code for HLS tools.
type Printer struct {
	cfg       Config
	out       strings.Builder
	indent    int
	stencils  *scope.RWScope[StencilType]
	allocs    map[string]ir.MemoryType
	overrides overrides
}

// NewPrinter returns a new printer.
func NewPrinter(cfg Config) *Printer {
	return &Printer{
		cfg:      cfg,
		stencils: scope.NewScope[StencilType](nil),
		allocs:   make(map[string]ir.MemoryType),
	}
}

// DeclareStencil declares the type of a stencil or a stream defined outside
// of the statements being printed. A name can only be declared once.
func (p *Printer) DeclareStencil(name string, typ StencilType) error {
	if p.stencils.IsLocal(name) {
		return errors.Errorf("stencil %s already declared", name)
	}
	p.stencils.Define(name, typ)
	return nil
}

// Stencils returns the stencils and streams currently in scope.
func (p *Printer) Stencils() StencilScope {
	return p.stencils
}

// String returns the code printed so far.
func (p *Printer) String() string {
	return p.out.String()
}

// Reset discards the code printed so far together with the declared
// stencils and the live allocations.
func (p *Printer) Reset() {
	p.out.Reset()
	p.indent = 0
	p.stencils = scope.NewScope[StencilType](nil)
	clear(p.allocs)
}

func (p *Printer) doIndent() {
	p.out.WriteString(strings.Repeat(" ", p.indent*p.cfg.Indent))
}

func (p *Printer) line(format string, a ...any) {
	p.doIndent()
	fmt.Fprintf(&p.out, format, a...)
	p.out.WriteByte('\n')
}

func (p *Printer) nested(s ir.Stmt) error {
	p.indent++
	defer func() { p.indent-- }()
	return p.PrintStmt(s)
}

// PrintName returns a valid C identifier given an IR name.
func PrintName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func isStencilName(name string) (StreamKind, bool) {
	switch {
	case strings.HasSuffix(name, streamSuffix):
		return Stream, true
	case strings.HasSuffix(name, stencilSuffix), strings.HasSuffix(name, stencilUpdateSuffix):
		return Stencil, true
	}
	return Stencil, false
}

// PrintStmt prints a statement.
func (p *Printer) PrintStmt(stmt ir.Stmt) error {
	if stmt == nil {
		return nil
	}
	if p.overrides != nil {
		done, err := p.overrides.printStmt(stmt)
		if done || err != nil {
			return err
		}
	}
	switch s := stmt.(type) {
	case *ir.LetStmt:
		p.line("const %s %s = %s;", s.Value.Type().CType(), PrintName(s.Name), p.PrintExpr(s.Value))
		return p.PrintStmt(s.Body)
	case *ir.AssertStmt:
		if s.Message == nil {
			p.line("assert(%s);", p.PrintExpr(s.Cond))
			return nil
		}
		p.line("assert((%s) && %s);", p.PrintExpr(s.Cond), p.PrintExpr(s.Message))
	case *ir.ProducerConsumer:
		p.line("// produce %s", s.Name)
		if err := p.PrintStmt(s.Produce); err != nil {
			return err
		}
		p.line("// consume %s", s.Name)
		return p.PrintStmt(s.Consume)
	case *ir.For:
		return p.printFor(s)
	case *ir.Store:
		p.line("%s[%s] = %s;", PrintName(s.Name), p.PrintExpr(s.Index), p.PrintExpr(s.Value))
	case *ir.Provide:
		fmterr.Assert(len(s.Values) == 1, "cannot print %d values provided to %s", len(s.Values), s.Name)
		p.line("%s(%s) = %s;", PrintName(s.Name), p.joinExprs(s.Args), p.PrintExpr(s.Values[0]))
	case *ir.Allocate:
		return p.printAllocate(s)
	case *ir.Free:
		p.printFree(s)
	case *ir.Realize:
		return p.printRealize(s)
	case *ir.Block:
		if err := p.PrintStmt(s.First); err != nil {
			return err
		}
		return p.PrintStmt(s.Rest)
	case *ir.IfThenElse:
		return p.printIf(s)
	case *ir.Evaluate:
		p.printEvaluate(s)
	default:
		fmterr.Panicf("cannot print statement %T", stmt)
	}
	return nil
}

func (p *Printer) printFor(s *ir.For) error {
	name := PrintName(s.Name)
	lo := p.PrintExpr(s.Min)
	extent := p.PrintExpr(s.Extent)
	p.line("for (int %s = %s; %s < %s + %s; %s++) {", name, lo, name, lo, extent, name)
	p.indent++
	switch s.ForType {
	case ir.Pipelined:
		p.line("#pragma HLS PIPELINE II=1")
	case ir.Unrolled:
		p.line("#pragma HLS UNROLL")
	}
	err := p.PrintStmt(s.Body)
	p.indent--
	p.line("}")
	return err
}

func (p *Printer) printAllocate(s *ir.Allocate) error {
	size := "1"
	if len(s.Extents) > 0 {
		size = stringseq.Join(p.exprs(s.Extents), " * ")
	}
	ctype := s.Typ.CType()
	name := PrintName(s.Name)
	switch s.MemoryType {
	case ir.Stack:
		p.line("%s %s[%s];", ctype, name, size)
	case ir.Heap:
		p.line("%s *%s = new %s[%s];", ctype, name, ctype, size)
	case ir.KernelBuffer:
		p.line("%s *%s = (%s *)kernel_buffer_alloc(sizeof(%s) * %s);", ctype, name, ctype, ctype, size)
	default:
		fmterr.Panicf("cannot allocate %s: unknown memory type %s", s.Name, s.MemoryType)
	}
	p.allocs[s.Name] = s.MemoryType
	return p.PrintStmt(s.Body)
}

func (p *Printer) printFree(s *ir.Free) {
	mem, ok := p.allocs[s.Name]
	fmterr.Assert(ok, "cannot free %s: allocation not found", s.Name)
	delete(p.allocs, s.Name)
	switch mem {
	case ir.Heap:
		p.line("delete[] %s;", PrintName(s.Name))
	case ir.KernelBuffer:
		p.line("kernel_buffer_free(%s);", PrintName(s.Name))
	}
}

func (p *Printer) printRealize(s *ir.Realize) error {
	kind, ok := isStencilName(s.Name)
	fmterr.Assert(ok, "cannot realize %s: only stencils and streams can be realized", s.Name)
	fmterr.Assert(len(s.Types) == 1, "cannot realize %s with %d types", s.Name, len(s.Types))
	typ := StencilType{
		Kind:     kind,
		ElemType: s.Types[0],
		Bounds:   s.Bounds,
	}
	p.line("%s %s;", typ.CType(), PrintName(s.Name))
	parent := p.stencils
	p.stencils = parent.NewChild()
	p.stencils.Define(s.Name, typ)
	defer func() { p.stencils = parent }()
	return p.PrintStmt(s.Body)
}

func (p *Printer) printIf(s *ir.IfThenElse) error {
	p.line("if (%s) {", p.PrintExpr(s.Cond))
	if err := p.nested(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		p.line("} else {")
		if err := p.nested(s.Else); err != nil {
			return err
		}
	}
	p.line("}")
	return nil
}

func (p *Printer) printEvaluate(s *ir.Evaluate) {
	switch s.Value.(type) {
	case *ir.IntImm, *ir.UIntImm, *ir.FloatImm:
		return
	case *ir.Call:
		p.line("%s;", p.PrintExpr(s.Value))
	default:
		p.line("(void)%s;", p.PrintExpr(s.Value))
	}
}

func (p *Printer) exprs(exprs []ir.Expr) iter.Seq[string] {
	return stringseq.Map(slices.Values(exprs), p.PrintExpr)
}

func (p *Printer) joinExprs(exprs []ir.Expr) string {
	return stringseq.Join(p.exprs(exprs), ", ")
}

// PrintExpr returns the C++ code of an expression.
func (p *Printer) PrintExpr(expr ir.Expr) string {
	if p.overrides != nil {
		if s, ok := p.overrides.printExpr(expr); ok {
			return s
		}
	}
	switch e := expr.(type) {
	case *ir.IntImm:
		return intImm(e)
	case *ir.UIntImm:
		fmterr.Assert(irkind.IsUnsigned(e.Typ.Kind), "unsigned literal %d of type %s", e.Value, e.Typ)
		return fmt.Sprintf("(%s)%d", e.Typ.CType(), e.Value)
	case *ir.FloatImm:
		return floatImm(e)
	case *ir.StringImm:
		return strconv.Quote(e.Value)
	case *ir.Variable:
		return PrintName(e.Name)
	case *ir.Cast:
		return fmt.Sprintf("(%s)(%s)", e.Typ.CType(), p.PrintExpr(e.X))
	case *ir.BinaryExpr:
		if e.Op.IsFunction() {
			return fmt.Sprintf("%s(%s, %s)", e.Op.String(), p.PrintExpr(e.X), p.PrintExpr(e.Y))
		}
		return fmt.Sprintf("(%s %s %s)", p.PrintExpr(e.X), e.Op.String(), p.PrintExpr(e.Y))
	case *ir.Not:
		return fmt.Sprintf("!(%s)", p.PrintExpr(e.X))
	case *ir.Select:
		return fmt.Sprintf("(%s ? %s : %s)", p.PrintExpr(e.Cond), p.PrintExpr(e.True), p.PrintExpr(e.False))
	case *ir.Load:
		return fmt.Sprintf("%s[%s]", PrintName(e.Name), p.PrintExpr(e.Index))
	case *ir.Call:
		return fmt.Sprintf("%s(%s)", PrintName(e.Name), p.joinExprs(e.Args))
	case *ir.Let:
		return fmt.Sprintf("({ const %s %s = %s; %s; })", e.Value.Type().CType(), PrintName(e.Name), p.PrintExpr(e.Value), p.PrintExpr(e.Body))
	}
	fmterr.Panicf("cannot print expression %T", expr)
	return ""
}

func intImm(e *ir.IntImm) string {
	fmterr.Assert(irkind.IsSigned(e.Typ.Kind) || e.Typ.Kind == irkind.Bool, "integer literal %d of type %s", e.Value, e.Typ)
	switch e.Typ.Kind {
	case irkind.Int32:
		return strconv.FormatInt(e.Value, 10)
	case irkind.Bool:
		return strconv.FormatBool(e.Value != 0)
	}
	return fmt.Sprintf("(%s)%d", e.Typ.CType(), e.Value)
}

func floatImm(e *ir.FloatImm) string {
	fmterr.Assert(irkind.IsFloatKind(e.Typ.Kind), "float literal %v of type %s", e.Value, e.Typ)
	switch {
	case math.IsNaN(e.Value):
		return "NAN"
	case math.IsInf(e.Value, 1):
		return "INFINITY"
	case math.IsInf(e.Value, -1):
		return "-INFINITY"
	}
	bits := 64
	if e.Typ.Bits() <= 32 {
		bits = 32
	}
	s := strconv.FormatFloat(e.Value, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	if bits == 32 {
		return s + "f"
	}
	return "(double)" + s
}
