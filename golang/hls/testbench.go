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
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/gx-org/hlsc/base/stringseq"
	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/nikandfor/tlog"
	"github.com/pkg/errors"
)

// Target generates the kernels of the accelerated regions.
type Target interface {
	// AddKernel adds a kernel computing body given its arguments.
	// name is the name of the region. The function returns the name of
	// the generated kernel to call.
	AddKernel(body ir.Stmt, name string, args []Argument) (string, error)
}

// Testbench generates the code of a pipeline calling a kernel for each
// accelerated region. The code runs on a CPU and is used to test the
// kernels generated by the target.
type Testbench struct {
	*Printer
	target Target
}

var _ overrides = (*Testbench)(nil)

// NewTestbench returns a testbench generator adding the kernels to target.
func NewTestbench(cfg Config, target Target) *Testbench {
	tb := &Testbench{
		Printer: NewPrinter(cfg),
		target:  target,
	}
	tb.Printer.overrides = tb
	return tb
}

// KernelName returns the name of the kernel function of a region.
func KernelName(cfg Config, region string) string {
	name := strings.TrimPrefix(region, cfg.TargetTag)
	name = strings.TrimLeft(PrintName(name), "_")
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "p" + name
	}
	return name
}

func (tb *Testbench) printStmt(stmt ir.Stmt) (bool, error) {
	switch s := stmt.(type) {
	case *ir.ProducerConsumer:
		if !strings.HasPrefix(s.Name, tb.cfg.TargetTag) {
			return false, nil
		}
		return true, tb.printRegion(s)
	case *ir.Allocate:
		if s.MemoryType != ir.KernelBuffer {
			return false, nil
		}
		alloc := *s
		alloc.MemoryType = ir.Heap
		return true, tb.PrintStmt(&alloc)
	}
	return false, nil
}

func (tb *Testbench) printExpr(expr ir.Expr) (string, bool) {
	call, ok := expr.(*ir.Call)
	if !ok {
		return "", false
	}
	switch call.Name {
	case "slice_kbuf", "create_kbuf":
		return "0", true
	}
	return "", false
}

// hardwareBody returns the body of an accelerated region,
// that is the statements following the call starting the accelerator.
func (tb *Testbench) hardwareBody(s *ir.ProducerConsumer) ir.Stmt {
	block, ok := s.Produce.(*ir.Block)
	fmterr.Assert(ok, "production of %s is a %T: want a block starting with %s()", s.Name, s.Produce, tb.cfg.StartCall)
	eval, ok := block.First.(*ir.Evaluate)
	fmterr.Assert(ok, "production of %s starts with a %T: want a call to %s()", s.Name, block.First, tb.cfg.StartCall)
	call, ok := eval.Value.(*ir.Call)
	fmterr.Assert(ok && call.Name == tb.cfg.StartCall, "production of %s starts with %s: want a call to %s()", s.Name, eval.Value, tb.cfg.StartCall)
	return block.Rest
}

func (tb *Testbench) printRegion(s *ir.ProducerConsumer) error {
	body := tb.hardwareBody(s)
	tlog.V("hls").Printw("compute the closure", "region", s.Name)
	args := NewClosure(body).Arguments(tb.Stencils())
	kernel, err := tb.target.AddKernel(body, s.Name, args)
	if err != nil {
		return errors.Wrapf(err, "cannot generate the kernel of region %s", s.Name)
	}
	tb.line("// produce %s", s.Name)
	tb.line("%s(%s);", kernel, stringseq.Join(argNames(args), ", "))
	tb.line("// consume %s", s.Name)
	return tb.PrintStmt(s.Consume)
}

func argNames(args []Argument) iter.Seq[string] {
	return stringseq.Map(slices.Values(args), func(arg Argument) string {
		return PrintName(arg.Name)
	})
}

func argDecls(args []Argument) iter.Seq[string] {
	return stringseq.Map(slices.Values(args), Argument.Decl)
}

func (tb *Testbench) headers() string {
	return "#include <assert.h>\n" +
		"#include <stdint.h>\n" +
		"#include <hls_stream.h>\n" +
		"#include \"Stencil.h\"\n" +
		"#include \"" + tb.cfg.TargetName + ".h\"\n"
}

// Compile writes a C++ function named fnName with the given arguments
// computing body. Stencils and streams passed as arguments are declared
// for the accelerated regions of the body.
func (tb *Testbench) Compile(w io.Writer, fnName string, args []Argument, body ir.Stmt) error {
	tb.Reset()
	for _, arg := range args {
		if !arg.IsStream {
			continue
		}
		if err := tb.DeclareStencil(arg.Name, arg.StencilType); err != nil {
			return errors.WithMessagef(err, "function %s", fnName)
		}
	}
	tb.line("int %s(%s) {", PrintName(fnName), stringseq.Join(argDecls(args), ", "))
	if err := tb.nested(body); err != nil {
		return errors.WithMessagef(err, "function %s", fnName)
	}
	tb.indent++
	tb.line("return 0;")
	tb.indent--
	tb.line("}")
	if _, err := io.WriteString(w, tb.headers()+"\n"+tb.String()); err != nil {
		return errors.Wrapf(err, "cannot write function %s", fnName)
	}
	return nil
}
