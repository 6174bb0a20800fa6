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
	"slices"
	"strings"
	"text/template"

	gxfmt "github.com/gx-org/hlsc/base/fmt"
	"github.com/gx-org/hlsc/base/ordered"
	"github.com/gx-org/hlsc/base/stringseq"
	"github.com/gx-org/hlsc/base/tmpl"
	"github.com/gx-org/hlsc/base/uname"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/nikandfor/tlog"
	"github.com/pkg/errors"
)

var (
	headerTemplate = template.Must(template.New("header").Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

#include <hls_stream.h>
#include "Stencil.h"

{{.Prototypes}}
#endif  // {{.Guard}}
`))

	prototypeTemplate = template.Must(template.New("prototype").Parse("void {{.Name}}({{.Params}});\n"))
)

type (
	// Kernel is a function computing an accelerated region.
	Kernel struct {
		Name   string
		Region string
		Args   []Argument
		Body   ir.Stmt
	}

	// KernelGenerator generates HLS kernels for the accelerated regions
	// found by a testbench.
	KernelGenerator struct {
		cfg     Config
		names   *uname.Unique
		kernels *ordered.Map[string, *Kernel]
	}
)

var _ Target = (*KernelGenerator)(nil)

// Params returns the parameters of the kernel function.
func (k *Kernel) Params() string {
	return stringseq.Join(argDecls(k.Args), ", ")
}

// NewKernelGenerator returns a new generator of kernels.
func NewKernelGenerator(cfg Config) *KernelGenerator {
	return &KernelGenerator{
		cfg:     cfg,
		names:   uname.New(),
		kernels: ordered.NewMap[string, *Kernel](),
	}
}

// Reserve prevents kernels to be named after the given names,
// for example the name of the function calling them.
func (g *KernelGenerator) Reserve(names ...string) {
	for _, name := range names {
		g.names.Register(name)
	}
}

// AddKernel registers a kernel computing body.
// The name of the kernel is derived from the name of the region and is unique.
func (g *KernelGenerator) AddKernel(body ir.Stmt, region string, args []Argument) (string, error) {
	if body == nil {
		return "", errors.Errorf("region %s is empty", region)
	}
	name := g.names.Name(KernelName(g.cfg, region))
	g.kernels.Store(name, &Kernel{
		Name:   name,
		Region: region,
		Args:   args,
		Body:   body,
	})
	tlog.V("hls").Printw("add kernel", "name", name, "region", region, "num_args", len(args), "num_kernels", g.kernels.Size())
	return name, nil
}

// Kernels returns the kernels in the order they were added.
func (g *KernelGenerator) Kernels() []*Kernel {
	return slices.Collect(g.kernels.Values())
}

// Kernel returns a kernel given its name.
func (g *KernelGenerator) Kernel(name string) (*Kernel, bool) {
	return g.kernels.Load(name)
}

func (g *KernelGenerator) printKernel(_ int, k *Kernel) (string, error) {
	p := NewPrinter(g.cfg)
	for _, arg := range k.Args {
		if !arg.IsStream {
			continue
		}
		if err := p.DeclareStencil(arg.Name, arg.StencilType); err != nil {
			return "", errors.WithMessagef(err, "kernel %s", k.Name)
		}
	}
	p.line("void %s(%s) {", k.Name, k.Params())
	p.indent++
	for _, arg := range k.Args {
		if arg.IsStream {
			p.line("#pragma HLS INTERFACE axis register port=%s", PrintName(arg.Name))
		} else {
			p.line("#pragma HLS INTERFACE s_axilite port=%s bundle=config", PrintName(arg.Name))
		}
	}
	p.line("#pragma HLS INTERFACE s_axilite port=return bundle=config")
	p.line("#pragma HLS DATAFLOW")
	err := p.PrintStmt(k.Body)
	p.indent--
	if err != nil {
		return "", errors.WithMessagef(err, "kernel %s", k.Name)
	}
	p.line("}")
	src := p.String()
	if tlog.If("hls") {
		tlog.Printw("kernel source", "name", k.Name, "src", "\n"+gxfmt.Number(src))
	}
	return src, nil
}

// Files returns the header and the source files declaring and defining the kernels.
func (g *KernelGenerator) Files() []File {
	return []File{
		headerFile{KernelGenerator: g},
		sourceFile{KernelGenerator: g},
	}
}

type headerFile struct {
	*KernelGenerator
}

func (headerFile) Extension() string {
	return ".h"
}

func (f headerFile) Guard() string {
	return strings.ToUpper(PrintName(f.cfg.TargetName)) + "_H"
}

func (f headerFile) Prototypes() (string, error) {
	return tmpl.IterateTmpl(f.Kernels(), prototypeTemplate)
}

func (f headerFile) Write(w io.Writer) error {
	return headerTemplate.Execute(w, f)
}

type sourceFile struct {
	*KernelGenerator
}

func (sourceFile) Extension() string {
	return ".cpp"
}

func (f sourceFile) Write(w io.Writer) error {
	kernels, err := tmpl.IterateFunc(f.Kernels(), f.printKernel)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "#include \""+f.cfg.TargetName+".h\"\n\n"+kernels)
	return err
}
