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

package schedule

import (
	"maps"
	"slices"
	"sort"

	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/nikandfor/tlog"
	"github.com/pkg/errors"
	xmaps "golang.org/x/exp/maps"
)

// FuncSchedule is the schedule of a function. It defines where and when
// the function is computed and stored, as well as how it is mapped
// to a hardware accelerator.
type FuncSchedule struct {
	storeLevel, computeLevel LoopLevel
	storageDims              []StorageDim
	bounds                   []Bound
	wrappers                 map[string]*Function
	memoized                 bool

	isHWKernel       bool
	isAccelerated    bool
	isLinebuffered   bool
	accelerateInputs map[string]bool
	accelerateExit   string

	accelerateComputeLevel, accelerateStoreLevel LoopLevel

	// fifoDepths maps the name of a consumer to the depth of the FIFO feeding it.
	fifoDepths          map[string]int
	isKernelBuffer      bool
	isKernelBufferSlice bool
	tapFuncs            map[string]*Function
	tapParams           map[string]*ir.Parameter
}

// NewFuncSchedule returns a schedule computing and storing a function inline.
func NewFuncSchedule() *FuncSchedule {
	return &FuncSchedule{
		storeLevel:       Inlined(),
		computeLevel:     Inlined(),
		wrappers:         make(map[string]*Function),
		accelerateInputs: make(map[string]bool),
		fifoDepths:       make(map[string]int),
		tapFuncs:         make(map[string]*Function),
		tapParams:        make(map[string]*ir.Parameter),
	}
}

// DeepCopy returns a copy of the schedule sharing no mutable state with s,
// except for loop levels (immutable once published) and tap functions.
// Wrapper functions are deep-copied. A wrapper already present in copied
// is not copied again: the copy in the map is used instead. The same map
// needs to be passed to all the copies of a function graph for functions
// shared in the graph to be copied only once.
func (s *FuncSchedule) DeepCopy(copied DeepCopyMap) *FuncSchedule {
	fmterr.Assert(s != nil, "cannot deep-copy an undefined function schedule")
	c := &FuncSchedule{
		storeLevel:             s.storeLevel,
		computeLevel:           s.computeLevel,
		storageDims:            slices.Clone(s.storageDims),
		bounds:                 slices.Clone(s.bounds),
		wrappers:               make(map[string]*Function, len(s.wrappers)),
		memoized:               s.memoized,
		isHWKernel:             s.isHWKernel,
		isAccelerated:          s.isAccelerated,
		isLinebuffered:         s.isLinebuffered,
		accelerateInputs:       maps.Clone(s.accelerateInputs),
		accelerateExit:         s.accelerateExit,
		accelerateComputeLevel: s.accelerateComputeLevel,
		accelerateStoreLevel:   s.accelerateStoreLevel,
		fifoDepths:             maps.Clone(s.fifoDepths),
		isKernelBuffer:         s.isKernelBuffer,
		isKernelBufferSlice:    s.isKernelBufferSlice,
		tapFuncs:               maps.Clone(s.tapFuncs),
		tapParams:              maps.Clone(s.tapParams),
	}
	for name, wrapper := range s.wrappers {
		c.wrappers[name] = wrapper.DeepCopy(copied)
	}
	fmterr.Assert(len(c.wrappers) == len(s.wrappers), "wrappers lost while copying the schedule: got %d but want %d", len(c.wrappers), len(s.wrappers))
	return c
}

// StoreLevel returns the loop level at which the function is stored.
func (s *FuncSchedule) StoreLevel() LoopLevel { return s.storeLevel }

// SetStoreLevel sets the loop level at which the function is stored.
func (s *FuncSchedule) SetStoreLevel(l LoopLevel) { s.storeLevel = l }

// ComputeLevel returns the loop level at which the function is computed.
func (s *FuncSchedule) ComputeLevel() LoopLevel { return s.computeLevel }

// SetComputeLevel sets the loop level at which the function is computed.
func (s *FuncSchedule) SetComputeLevel(l LoopLevel) { s.computeLevel = l }

// StorageDims returns the storage layout of the function.
func (s *FuncSchedule) StorageDims() []StorageDim { return s.storageDims }

// SetStorageDims sets the storage layout of the function.
func (s *FuncSchedule) SetStorageDims(dims []StorageDim) { s.storageDims = dims }

// Bounds returns the explicit bounds of the function.
func (s *FuncSchedule) Bounds() []Bound { return s.bounds }

// AddBound adds an explicit bound to the function.
func (s *FuncSchedule) AddBound(b Bound) { s.bounds = append(s.bounds, b) }

// Memoized returns true if the values of the function are cached.
func (s *FuncSchedule) Memoized() bool { return s.memoized }

// SetMemoized sets if the values of the function are cached.
func (s *FuncSchedule) SetMemoized(m bool) { s.memoized = m }

// Wrappers returns the wrapper functions by name of the function they wrap.
// The empty name is the global wrapper.
func (s *FuncSchedule) Wrappers() map[string]*Function { return s.wrappers }

// AddWrapper registers a wrapper for the calls from a function.
// Redefining the wrapper of a function is an error. The global wrapper
// (empty function name) can be redefined: the previous wrapper is replaced.
func (s *FuncSchedule) AddWrapper(f string, wrapper *Function) error {
	fmterr.Assert(wrapper != nil, "nil wrapper for function %q", f)
	if _, exists := s.wrappers[f]; exists {
		if f != "" {
			return errors.Errorf("wrapper redefinition in function %q is not allowed", f)
		}
		tlog.Printw("warning: replacing previous definition of global wrapper", "wrapper", wrapper.Name)
	}
	s.wrappers[f] = wrapper
	return nil
}

// IsHWKernel returns true if the function is the output of a hardware kernel.
func (s *FuncSchedule) IsHWKernel() bool { return s.isHWKernel }

// SetHWKernel sets if the function is the output of a hardware kernel.
func (s *FuncSchedule) SetHWKernel(b bool) { s.isHWKernel = b }

// IsAccelerated returns true if the function is computed inside a hardware kernel.
func (s *FuncSchedule) IsAccelerated() bool { return s.isAccelerated }

// SetAccelerated sets if the function is computed inside a hardware kernel.
func (s *FuncSchedule) SetAccelerated(b bool) { s.isAccelerated = b }

// IsLinebuffered returns true if the function is stored in a line buffer.
func (s *FuncSchedule) IsLinebuffered() bool { return s.isLinebuffered }

// SetLinebuffered sets if the function is stored in a line buffer.
func (s *FuncSchedule) SetLinebuffered(b bool) { s.isLinebuffered = b }

// IsKernelBuffer returns true if the function is stored in a buffer shared with a hardware kernel.
func (s *FuncSchedule) IsKernelBuffer() bool { return s.isKernelBuffer }

// SetKernelBuffer sets if the function is stored in a buffer shared with a hardware kernel.
func (s *FuncSchedule) SetKernelBuffer(b bool) { s.isKernelBuffer = b }

// IsKernelBufferSlice returns true if the function is a slice of a kernel buffer.
func (s *FuncSchedule) IsKernelBufferSlice() bool { return s.isKernelBufferSlice }

// SetKernelBufferSlice sets if the function is a slice of a kernel buffer.
func (s *FuncSchedule) SetKernelBufferSlice(b bool) { s.isKernelBufferSlice = b }

// AccelerateInputs returns the sorted names of the producers feeding the accelerator.
func (s *FuncSchedule) AccelerateInputs() []string {
	names := xmaps.Keys(s.accelerateInputs)
	sort.Strings(names)
	return names
}

// AddAccelerateInput adds a producer feeding the accelerator.
func (s *FuncSchedule) AddAccelerateInput(name string) { s.accelerateInputs[name] = true }

// AccelerateExit returns the name of the stage at the output boundary of the accelerator.
func (s *FuncSchedule) AccelerateExit() string { return s.accelerateExit }

// SetAccelerateExit sets the name of the stage at the output boundary of the accelerator.
func (s *FuncSchedule) SetAccelerateExit(name string) { s.accelerateExit = name }

// AccelerateComputeLevel returns the loop level at which the accelerator is computed.
// The function must be accelerated.
func (s *FuncSchedule) AccelerateComputeLevel() LoopLevel {
	fmterr.Assert(s.isAccelerated, "accelerate compute level of a function which is not accelerated")
	return s.accelerateComputeLevel
}

// SetAccelerateComputeLevel sets the loop level at which the accelerator is computed.
// The function must be accelerated.
func (s *FuncSchedule) SetAccelerateComputeLevel(l LoopLevel) {
	fmterr.Assert(s.isAccelerated, "accelerate compute level of a function which is not accelerated")
	s.accelerateComputeLevel = l
}

// AccelerateStoreLevel returns the loop level at which the accelerator stores its buffers.
// The function must be accelerated.
func (s *FuncSchedule) AccelerateStoreLevel() LoopLevel {
	fmterr.Assert(s.isAccelerated, "accelerate store level of a function which is not accelerated")
	return s.accelerateStoreLevel
}

// SetAccelerateStoreLevel sets the loop level at which the accelerator stores its buffers.
// The function must be accelerated.
func (s *FuncSchedule) SetAccelerateStoreLevel(l LoopLevel) {
	fmterr.Assert(s.isAccelerated, "accelerate store level of a function which is not accelerated")
	s.accelerateStoreLevel = l
}

// FIFODepths returns the depth of the FIFO feeding each consumer.
func (s *FuncSchedule) FIFODepths() map[string]int { return s.fifoDepths }

// SetFIFODepth sets the depth of the FIFO between the function and a consumer.
func (s *FuncSchedule) SetFIFODepth(consumer string, depth int) { s.fifoDepths[consumer] = depth }

// TapFuncs returns the functions exposing internal values of the accelerator.
func (s *FuncSchedule) TapFuncs() map[string]*Function { return s.tapFuncs }

// AddTapFunc adds a function exposing internal values of the accelerator.
func (s *FuncSchedule) AddTapFunc(f *Function) { s.tapFuncs[f.Name] = f }

// TapParams returns the parameters exposing internal values of the accelerator.
func (s *FuncSchedule) TapParams() map[string]*ir.Parameter { return s.tapParams }

// AddTapParam adds a parameter exposing internal values of the accelerator.
func (s *FuncSchedule) AddTapParam(p *ir.Parameter) { s.tapParams[p.Name] = p }

// Accept walks all the expressions of the explicit bounds.
func (s *FuncSchedule) Accept(v ir.Visitor) {
	for _, b := range s.bounds {
		accept(v, b.Min, b.Extent, b.Modulus, b.Remainder)
	}
}

// Mutate replaces the expressions of the explicit bounds with the result of the mutator.
// Undefined (nil) expressions are left as is.
func (s *FuncSchedule) Mutate(m ir.Mutator) {
	if s == nil {
		return
	}
	for i := range s.bounds {
		b := &s.bounds[i]
		b.Min = mutate(m, b.Min)
		b.Extent = mutate(m, b.Extent)
		b.Modulus = mutate(m, b.Modulus)
		b.Remainder = mutate(m, b.Remainder)
	}
}
