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
	"slices"

	"github.com/gx-org/hlsc/build/ir"
	"github.com/pkg/errors"
)

// StageSchedule is the schedule of a single stage of a function:
// the pure definition or one of its updates.
// It defines the loop nest of the stage.
type StageSchedule struct {
	RVars      []ReductionVariable
	Splits     []Split
	Dims       []Dim
	Prefetches []PrefetchDirective

	// Touched is true if the schedule has been explicitly set by the user.
	Touched bool
	// AllowRaceConditions disables the check of parallel or vectorized reductions.
	AllowRaceConditions bool
}

// NewStageSchedule returns an empty stage schedule.
func NewStageSchedule() *StageSchedule {
	return &StageSchedule{}
}

// Copy returns a copy of the schedule.
// Expressions are immutable and shared with the original.
func (s *StageSchedule) Copy() *StageSchedule {
	return &StageSchedule{
		RVars:               slices.Clone(s.RVars),
		Splits:              slices.Clone(s.Splits),
		Dims:                slices.Clone(s.Dims),
		Prefetches:          slices.Clone(s.Prefetches),
		Touched:             s.Touched,
		AllowRaceConditions: s.AllowRaceConditions,
	}
}

// Accept walks all the expressions of the schedule.
func (s *StageSchedule) Accept(v ir.Visitor) {
	for _, r := range s.RVars {
		accept(v, r.Min, r.Extent)
	}
	for _, split := range s.Splits {
		accept(v, split.Factor)
	}
	for _, p := range s.Prefetches {
		accept(v, p.Offset)
	}
}

// Mutate replaces all the expressions of the schedule with the result of the mutator.
// Undefined (nil) expressions are left as is.
func (s *StageSchedule) Mutate(m ir.Mutator) {
	if s == nil {
		return
	}
	for i := range s.RVars {
		r := &s.RVars[i]
		r.Min = mutate(m, r.Min)
		r.Extent = mutate(m, r.Extent)
	}
	for i := range s.Splits {
		s.Splits[i].Factor = mutate(m, s.Splits[i].Factor)
	}
	for i := range s.Prefetches {
		s.Prefetches[i].Offset = mutate(m, s.Prefetches[i].Offset)
	}
}

// CheckRaceConditions returns an error if a reduction variable carrying a
// dependency is parallelized or vectorized and race conditions are not allowed.
func (s *StageSchedule) CheckRaceConditions() error {
	if s.AllowRaceConditions {
		return nil
	}
	for _, dim := range s.Dims {
		if !dim.IsParallel() || dim.DimType != ImpureRVar {
			continue
		}
		return errors.Errorf("loop over reduction variable %s cannot be %s: potential race condition", dim.Var, dim.ForType.String())
	}
	return nil
}

func accept(v ir.Visitor, exprs ...ir.Expr) {
	for _, expr := range exprs {
		if !ir.Defined(expr) {
			continue
		}
		ir.Inspect(expr, v)
	}
}

func mutate(m ir.Mutator, expr ir.Expr) ir.Expr {
	if !ir.Defined(expr) {
		return expr
	}
	return m.Mutate(expr)
}
