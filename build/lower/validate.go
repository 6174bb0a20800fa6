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

package lower

import (
	"sort"

	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/gx-org/hlsc/build/schedule"
	xmaps "golang.org/x/exp/maps"
)

// Validate checks the hardware schedules of the functions of a pipeline.
// All the problems found are reported in the returned error.
func Validate(funcs []*schedule.Function) error {
	known := make(map[string]bool, len(funcs))
	for _, fn := range funcs {
		known[fn.Name] = true
	}
	errs := &fmterr.Errors{}
	for _, fn := range funcs {
		errs.Push(fmterr.FuncPrefix(fn.Name))
		validateFunc(errs, known, fn)
		errs.Pop()
	}
	return errs.ToError()
}

func validateFunc(errs *fmterr.Errors, known map[string]bool, fn *schedule.Function) {
	for i, stage := range fn.Stages() {
		if stage.Schedule == nil {
			continue
		}
		if err := stage.Schedule.CheckRaceConditions(); err != nil {
			errs.Appendf("stage %d: %v", i, err)
		}
	}
	sched := fn.Schedule
	if sched == nil {
		return
	}
	depths := sched.FIFODepths()
	consumers := xmaps.Keys(depths)
	sort.Strings(consumers)
	for _, consumer := range consumers {
		if depth := depths[consumer]; depth <= 0 {
			errs.Appendf("invalid FIFO depth %d to consumer %s", depth, consumer)
		}
	}
	if sched.IsHWKernel() && !sched.IsAccelerated() {
		errs.Appendf("hardware kernel is not accelerated")
	}
	if !sched.IsAccelerated() {
		return
	}
	if sched.AccelerateExit() == "" {
		errs.Appendf("accelerated function without exit")
	}
	if !sched.AccelerateComputeLevel().Defined() {
		errs.Appendf("accelerated function without compute level")
	}
	if !sched.AccelerateStoreLevel().Defined() {
		errs.Appendf("accelerated function without store level")
	}
	for _, input := range sched.AccelerateInputs() {
		if !known[input] {
			errs.Appendf("unknown accelerator input %s", input)
		}
	}
}
