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
	"sort"
	"strings"

	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/gx-org/hlsc/internal/base/scope"
	"github.com/nikandfor/tlog"
	xmaps "golang.org/x/exp/maps"
)

const (
	bufferSuffix        = ".buffer"
	streamSuffix        = ".stream"
	stencilSuffix       = ".stencil"
	stencilUpdateSuffix = ".stencil_update"
)

type (
	// BufferRef is a reference to a buffer from a closure.
	BufferRef struct {
		Typ         ir.Type
		Read, Write bool
	}

	// StencilScope maps the names of stencils and streams to their types.
	StencilScope = scope.Scope[StencilType]

	// Closure is the set of variables and buffers a statement references
	// but does not define.
	Closure struct {
		vars    map[string]ir.Type
		buffers map[string]*BufferRef
		bound   map[string]int
	}
)

// NewClosure computes the closure of a statement.
func NewClosure(body ir.Stmt) *Closure {
	c := &Closure{
		vars:    make(map[string]ir.Type),
		buffers: make(map[string]*BufferRef),
		bound:   make(map[string]int),
	}
	c.walk(body)
	return c
}

// Vars returns the free variables and their types.
func (c *Closure) Vars() map[string]ir.Type {
	return c.vars
}

// Buffers returns the buffers referenced by the statement.
func (c *Closure) Buffers() map[string]*BufferRef {
	return c.buffers
}

func (c *Closure) walk(node ir.Node) {
	ir.Inspect(node, c.visit)
}

// within walks nodes with name bound.
func (c *Closure) within(name string, nodes ...ir.Node) {
	c.bound[name]++
	for _, node := range nodes {
		if node == nil {
			continue
		}
		c.walk(node)
	}
	c.bound[name]--
}

func (c *Closure) isBound(name string) bool {
	return c.bound[name] > 0
}

func (c *Closure) buffer(name string, typ ir.Type, read, write bool) {
	if c.isBound(name) {
		return
	}
	ref := c.buffers[name]
	if ref == nil {
		ref = &BufferRef{Typ: typ}
		c.buffers[name] = ref
	}
	ref.Read = ref.Read || read
	ref.Write = ref.Write || write
}

func (c *Closure) visit(node ir.Node) bool {
	switch n := node.(type) {
	case *ir.Variable:
		if c.isBound(n.Name) {
			return false
		}
		if strings.HasSuffix(n.Name, bufferSuffix) || (n.Param != nil && n.Param.IsBuffer) {
			c.buffer(n.Name, n.Typ, false, false)
			return false
		}
		c.vars[n.Name] = n.Typ
	case *ir.Load:
		c.buffer(n.Name, n.Typ, true, false)
	case *ir.Store:
		c.buffer(n.Name, n.Value.Type(), false, true)
	case *ir.Call:
		if n.CallType == ir.Image {
			c.buffer(n.Name, n.Typ, true, false)
		}
	case *ir.Let:
		c.walk(n.Value)
		c.within(n.Name, n.Body)
		return false
	case *ir.LetStmt:
		c.walk(n.Value)
		c.within(n.Name, n.Body)
		return false
	case *ir.For:
		c.walk(n.Min)
		c.walk(n.Extent)
		c.within(n.Name, n.Body)
		return false
	case *ir.Allocate:
		for _, extent := range n.Extents {
			c.walk(extent)
		}
		c.walk(n.Condition)
		c.within(n.Name, n.Body)
		return false
	case *ir.Realize:
		for _, r := range n.Bounds {
			c.walk(r.Min)
			c.walk(r.Extent)
		}
		c.walk(n.Condition)
		c.within(n.Name, n.Body)
		return false
	}
	return true
}

// Arguments returns the arguments of a kernel computing the closed statement,
// sorted by name. Stencils and streams are typed from the stencil scope.
//
// A closure referencing a buffer or a stencil update is invalid
// and causes an internal error.
func (c *Closure) Arguments(stencils StencilScope) []Argument {
	bufNames := xmaps.Keys(c.buffers)
	sort.Strings(bufNames)
	for _, name := range bufNames {
		ref := c.buffers[name]
		tlog.V("closure").Printw("buffer", "name", name, "type", ref.Typ.String(), "read", ref.Read, "write", ref.Write)
	}
	fmterr.Assert(len(c.buffers) == 0, "hardware pipeline references %d buffer(s): %v", len(c.buffers), bufNames)

	names := xmaps.Keys(c.vars)
	sort.Strings(names)
	args := make([]Argument, 0, len(names))
	for _, name := range names {
		tlog.V("closure").Printw("var", "name", name)
		switch {
		case strings.HasSuffix(name, streamSuffix), strings.HasSuffix(name, stencilSuffix):
			stype, ok := stencils.Find(name)
			fmterr.Assert(ok, "stencil type of %s undefined", name)
			args = append(args, Argument{Name: name, IsStream: true, StencilType: stype})
		case strings.HasSuffix(name, stencilUpdateSuffix):
			fmterr.Panicf("unexpected stencil update %s in the closure of a hardware pipeline", name)
		default:
			args = append(args, Argument{Name: name, ScalarType: c.vars[name]})
		}
	}
	return args
}
