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

// Package lower inserts the accelerated regions in a lowered pipeline
// and checks the hardware schedules of its functions.
package lower

import (
	"github.com/gx-org/hlsc/build/ir"
	"github.com/gx-org/hlsc/build/schedule"
	"github.com/pkg/errors"
)

// Marker names the nodes delimiting accelerated regions.
type Marker struct {
	// Tag prefixes the name of the region.
	Tag string
	// StartCall is the intrinsic starting the accelerator.
	StartCall string
}

// DefaultMarker returns the marker recognized by the default code generators.
func DefaultMarker() Marker {
	return Marker{
		Tag:       "_hls_target.",
		StartCall: "start_hwacc",
	}
}

// Region returns the accelerated region of a function executing body.
func (m Marker) Region(exit string, body ir.Stmt) *ir.ProducerConsumer {
	start := &ir.Evaluate{Value: &ir.Call{
		Name:     m.StartCall,
		Typ:      ir.VoidType(),
		CallType: ir.Intrinsic,
	}}
	return &ir.ProducerConsumer{
		Name:    m.Tag + exit,
		Produce: ir.NewBlock(start, body),
		Consume: ir.NoOp(),
	}
}

// InsertAccelerator wraps the body of the loop at which the accelerator of
// fn is computed into an accelerated region. The whole statement is wrapped
// if the accelerator is computed at the root.
func (m Marker) InsertAccelerator(s ir.Stmt, fn *schedule.Function) (ir.Stmt, error) {
	sched := fn.Schedule
	if !sched.IsHWKernel() || !sched.IsAccelerated() {
		return nil, errors.Errorf("function %s is not an accelerated hardware kernel", fn.Name)
	}
	exit := sched.AccelerateExit()
	if exit == "" {
		return nil, errors.Errorf("function %s has no accelerator exit", fn.Name)
	}
	level := sched.AccelerateComputeLevel()
	if !level.Defined() || level.IsInline() {
		return nil, errors.Errorf("function %s has no accelerator compute level", fn.Name)
	}
	if level.IsRoot() {
		return m.Region(exit, s), nil
	}
	var matched []string
	out := ir.RewriteStmt(s, func(stmt ir.Stmt) ir.Stmt {
		loop, ok := stmt.(*ir.For)
		if !ok || !level.Match(loop.Name) {
			return stmt
		}
		matched = append(matched, loop.Name)
		wrapped := *loop
		wrapped.Body = m.Region(exit, loop.Body)
		return &wrapped
	})
	switch len(matched) {
	case 0:
		return nil, errors.Errorf("cannot accelerate function %s: loop %s not found", fn.Name, level)
	case 1:
		return out, nil
	}
	return nil, errors.Errorf("cannot accelerate function %s: %d loops %v match %s", fn.Name, len(matched), matched, level)
}
