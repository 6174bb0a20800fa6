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
	"strings"

	"github.com/gx-org/hlsc/build/ir"
)

// StreamKind is the kind of channel carrying stencils.
type StreamKind int

// Kinds of stencil channels.
const (
	// Stencil is a single stencil value.
	Stencil StreamKind = iota
	// Stream is a FIFO of stencils.
	Stream
	// AXIStream is a FIFO of stencils on an AXI bus.
	AXIStream
)

// String representation of the kind.
func (k StreamKind) String() string {
	switch k {
	case Stencil:
		return "stencil"
	case Stream:
		return "stream"
	case AXIStream:
		return "axi_stream"
	}
	return fmt.Sprintf("StreamKind(%d)", int(k))
}

// StencilType is the type of a stencil or of a stream of stencils.
type StencilType struct {
	Kind     StreamKind
	ElemType ir.Type
	Bounds   []ir.Range
}

// Defined returns true if the type has been set.
func (t StencilType) Defined() bool {
	return t.ElemType.Defined()
}

func (t StencilType) stencil(packed bool) string {
	var b strings.Builder
	if packed {
		b.WriteString("PackedStencil<")
	} else {
		b.WriteString("Stencil<")
	}
	b.WriteString(t.ElemType.CType())
	for _, r := range t.Bounds {
		b.WriteString(", ")
		b.WriteString(r.Extent.String())
	}
	b.WriteString(">")
	return b.String()
}

// CType returns the C++ type declaring a value of type t.
func (t StencilType) CType() string {
	switch t.Kind {
	case Stream:
		return "hls::stream<" + t.stencil(true) + " >"
	case AXIStream:
		return "hls::stream<AxiPackedStencil<" + strings.TrimPrefix(t.stencil(true), "PackedStencil<") + " >"
	}
	return t.stencil(false)
}

// String representation of the type.
func (t StencilType) String() string {
	return t.CType()
}

// Argument of a kernel generated for an accelerated region
// or of a generated testbench function.
type Argument struct {
	Name string
	// IsStream is true if the argument is a stencil or a stream of stencils.
	// StencilType is then set. Otherwise, ScalarType is set.
	IsStream    bool
	ScalarType  ir.Type
	StencilType StencilType
	// IsBuffer is true if the argument is a pointer to a buffer of ScalarType elements.
	// Kernels never take buffers.
	IsBuffer bool
}

// Decl returns the C++ declaration of the argument as a function parameter.
// Stencils and streams are passed by reference.
func (a Argument) Decl() string {
	switch {
	case a.IsStream:
		return a.StencilType.CType() + " &" + PrintName(a.Name)
	case a.IsBuffer:
		return a.ScalarType.CType() + " *" + PrintName(a.Name)
	}
	return a.ScalarType.CType() + " " + PrintName(a.Name)
}
