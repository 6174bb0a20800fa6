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
	"strings"

	"github.com/gx-org/hlsc/build/fmterr"
)

// rootVar is the variable name of the root loop level.
const rootVar = "__root"

type (
	// VarOrRVar is the name of a loop variable or of a reduction variable.
	VarOrRVar struct {
		Name   string
		IsRVar bool
	}

	loopLevelContents struct {
		// funcName is empty for inline or root.
		funcName string
		varName  string
		isRVar   bool
	}

	// LoopLevel identifies a loop in a loop nest: a function and one of its
	// loop variables, or one of the two sentinels Inlined and Root.
	//
	// A LoopLevel is a handle: copies of a LoopLevel share the same contents
	// and observe modifications made with CopyFrom. The zero value is undefined.
	LoopLevel struct {
		contents *loopLevelContents
	}
)

// NewLoopLevel returns a loop level given a function name and a variable name.
func NewLoopLevel(funcName, varName string, isRVar bool) LoopLevel {
	return LoopLevel{contents: &loopLevelContents{
		funcName: funcName,
		varName:  varName,
		isRVar:   isRVar,
	}}
}

// LoopLevelAt returns the loop level of a function at a variable.
func LoopLevelAt(f *Function, v VarOrRVar) LoopLevel {
	return NewLoopLevel(f.Name, v.Name, v.IsRVar)
}

// Inlined returns a loop level meaning that a function is computed
// inline where its values are used.
func Inlined() LoopLevel {
	return NewLoopLevel("", "", false)
}

// Root returns the loop level outside of all loops.
func Root() LoopLevel {
	return NewLoopLevel("", rootVar, false)
}

// CopyFrom overwrites the contents of the loop level with the contents of other.
// All the handles sharing the contents of l observe the change:
// it must only be called before the loop level has been published.
func (l LoopLevel) CopyFrom(other LoopLevel) {
	fmterr.Assert(l.Defined(), "cannot copy into an undefined loop level")
	fmterr.Assert(other.Defined(), "cannot copy from an undefined loop level")
	*l.contents = *other.contents
}

// Defined returns true if the loop level has contents.
func (l LoopLevel) Defined() bool {
	return l.contents != nil
}

// Func returns the name of the function of the loop level.
// The name is empty for inline and root.
func (l LoopLevel) Func() string {
	fmterr.Assert(l.Defined(), "undefined loop level has no function")
	return l.contents.funcName
}

// Var returns the variable of the loop level.
// Inline and root loop levels have no variable.
func (l LoopLevel) Var() VarOrRVar {
	fmterr.Assert(l.Defined(), "undefined loop level has no variable")
	fmterr.Assert(!l.IsInline() && !l.IsRoot(), "loop level %s has no variable", l.String())
	return VarOrRVar{Name: l.contents.varName, IsRVar: l.contents.isRVar}
}

// IsInline returns true if the loop level is the inline sentinel.
func (l LoopLevel) IsInline() bool {
	fmterr.Assert(l.Defined(), "undefined loop level")
	return l.contents.varName == ""
}

// IsRoot returns true if the loop level is the root sentinel.
func (l LoopLevel) IsRoot() bool {
	fmterr.Assert(l.Defined(), "undefined loop level")
	return l.contents.varName == rootVar
}

// String returns "<func>.<var>".
func (l LoopLevel) String() string {
	fmterr.Assert(l.Defined(), "undefined loop level")
	return l.contents.funcName + "." + l.contents.varName
}

// Match returns true if the name of a generated loop corresponds to the loop level,
// that is if the name starts with "<func>." and ends with ".<var>".
func (l LoopLevel) Match(loop string) bool {
	fmterr.Assert(l.Defined(), "undefined loop level")
	return strings.HasPrefix(loop, l.contents.funcName+".") &&
		strings.HasSuffix(loop, "."+l.contents.varName)
}

// MatchLevel returns true if other is a loop level of the same function and
// if the variables are the same or one of them is nested in the other
// (one variable name is a dotted suffix of the other).
func (l LoopLevel) MatchLevel(other LoopLevel) bool {
	fmterr.Assert(l.Defined() && other.Defined(), "undefined loop level")
	a, b := l.contents, other.contents
	return a.funcName == b.funcName &&
		(a.varName == b.varName ||
			strings.HasSuffix(a.varName, "."+b.varName) ||
			strings.HasSuffix(b.varName, "."+a.varName))
}

// Equal returns true if both loop levels are undefined or if both are
// defined with the same function and variable names.
func (l LoopLevel) Equal(other LoopLevel) bool {
	if l.Defined() != other.Defined() {
		return false
	}
	if !l.Defined() {
		return true
	}
	return l.contents.funcName == other.contents.funcName &&
		l.contents.varName == other.contents.varName
}

// Same returns true if both handles share the same contents.
func (l LoopLevel) Same(other LoopLevel) bool {
	return l.contents == other.contents
}
