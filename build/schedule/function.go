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

// Package schedule defines the schedule of the functions of a pipeline:
// where and when each function is computed and stored, the structure of
// the loop nests computing its stages, and how the pipeline is mapped to
// a hardware accelerator.
package schedule

import (
	"slices"

	"github.com/gx-org/hlsc/build/ir"
)

type (
	// Definition is a stage of a function: its pure definition or an update.
	Definition struct {
		// Args are the coordinates at which Values are stored.
		Args     []ir.Expr
		Values   []ir.Expr
		Schedule *StageSchedule
	}

	// Function is a function of a pipeline and its schedule.
	// Functions reference each other through their schedules (wrappers, taps)
	// and form a graph which may be shared or cyclic.
	Function struct {
		Name     string
		Args     []string
		Pure     *Definition
		Updates  []*Definition
		Schedule *FuncSchedule
	}

	// DeepCopyMap maps original functions to their copies.
	DeepCopyMap map[*Function]*Function
)

// NewFunction returns a function with a default schedule.
func NewFunction(name string, args ...string) *Function {
	return &Function{
		Name:     name,
		Args:     args,
		Schedule: NewFuncSchedule(),
		Pure: &Definition{
			Schedule: NewStageSchedule(),
		},
	}
}

// Stages returns the pure definition followed by the updates.
func (f *Function) Stages() []*Definition {
	if f.Pure == nil {
		return slices.Clone(f.Updates)
	}
	return append([]*Definition{f.Pure}, f.Updates...)
}

func (d *Definition) copy() *Definition {
	if d == nil {
		return nil
	}
	c := &Definition{
		Args:   slices.Clone(d.Args),
		Values: slices.Clone(d.Values),
	}
	if d.Schedule != nil {
		c.Schedule = d.Schedule.Copy()
	}
	return c
}

// DeepCopy returns a copy of the function and of all the functions it references.
// A function already in copied is not copied again. The copy is registered
// in copied before the referenced functions are copied so that cycles
// terminate.
func (f *Function) DeepCopy(copied DeepCopyMap) *Function {
	if c, ok := copied[f]; ok {
		return c
	}
	c := &Function{
		Name: f.Name,
		Args: slices.Clone(f.Args),
		Pure: f.Pure.copy(),
	}
	copied[f] = c
	for _, update := range f.Updates {
		c.Updates = append(c.Updates, update.copy())
	}
	if f.Schedule != nil {
		c.Schedule = f.Schedule.DeepCopy(copied)
	}
	return c
}

// Mutate passes a mutator through all the expressions of the function,
// including the expressions of its schedules.
func (f *Function) Mutate(m ir.Mutator) {
	for _, stage := range f.Stages() {
		for i, arg := range stage.Args {
			stage.Args[i] = mutate(m, arg)
		}
		for i, val := range stage.Values {
			stage.Values[i] = mutate(m, val)
		}
		stage.Schedule.Mutate(m)
	}
	f.Schedule.Mutate(m)
}

// Accept walks all the expressions of the function,
// including the expressions of its schedules.
func (f *Function) Accept(v ir.Visitor) {
	for _, stage := range f.Stages() {
		accept(v, stage.Args...)
		accept(v, stage.Values...)
		if stage.Schedule != nil {
			stage.Schedule.Accept(v)
		}
	}
	if f.Schedule != nil {
		f.Schedule.Accept(v)
	}
}
