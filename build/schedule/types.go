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
	"fmt"

	"github.com/gx-org/hlsc/build/ir"
)

type (
	// StorageDim is a dimension of the storage of a function.
	// The order of the storage dimensions is the layout in memory.
	StorageDim struct {
		Var string
		// Alignment of the extent of the dimension. May be nil.
		Alignment ir.Expr
		// Fold is the factor by which the storage is folded. May be nil.
		Fold        ir.Expr
		FoldForward bool
	}

	// Bound is an explicit bound set by the user on a dimension of a function.
	// Unset expressions are nil.
	Bound struct {
		Var                string
		Min, Extent        ir.Expr
		Modulus, Remainder ir.Expr
	}

	// ReductionVariable is a variable of a reduction domain.
	ReductionVariable struct {
		Var         string
		Min, Extent ir.Expr
	}

	// Split transforms a loop into new loops (or merges loops into one).
	Split struct {
		OldVar, Outer, Inner string
		Factor               ir.Expr
		Exact                bool
		Tail                 TailStrategy
		SplitType            SplitType
	}

	// Dim is a loop of a stage, from innermost to outermost.
	Dim struct {
		Var       string
		ForType   ir.ForType
		DeviceAPI DeviceAPI
		DimType   DimType
	}

	// PrefetchDirective prefetches a function or an input at a loop level.
	PrefetchDirective struct {
		Name     string
		Var      string
		Offset   ir.Expr
		Strategy PrefetchBoundStrategy
	}
)

// TailStrategy is how a split handles extents not multiple of the factor.
type TailStrategy int

// Tail strategies.
const (
	TailAuto TailStrategy = iota
	TailRoundUp
	TailGuardWithIf
	TailShiftInwards
)

// SplitType is the kind of loop transformation.
type SplitType int

// Split types.
const (
	SplitVar SplitType = iota
	RenameVar
	FuseVars
	PurifyRVar
)

// IsSplit returns true if the split splits a loop into two loops.
func (s Split) IsSplit() bool { return s.SplitType == SplitVar }

// IsRename returns true if the split renames a loop.
func (s Split) IsRename() bool { return s.SplitType == RenameVar }

// IsFuse returns true if the split fuses two loops.
func (s Split) IsFuse() bool { return s.SplitType == FuseVars }

// IsPurify returns true if the split replaces a reduction variable by a pure variable.
func (s Split) IsPurify() bool { return s.SplitType == PurifyRVar }

// DeviceAPI is the device on which a loop runs.
type DeviceAPI int

// Device APIs.
const (
	DeviceNone DeviceAPI = iota
	DeviceHost
	DeviceHLS
)

// DimType is the type of variable of a loop.
type DimType int

// Dimension types.
const (
	// PureVar is a pure variable.
	PureVar DimType = iota
	// PureRVar is a reduction variable that can be reordered or parallelized.
	PureRVar
	// ImpureRVar is a reduction variable with loop-carried dependencies.
	ImpureRVar
)

// IsPure returns true if the dimension can be reordered.
func (d Dim) IsPure() bool {
	return d.DimType == PureVar || d.DimType == PureRVar
}

// IsRVar returns true if the dimension is a reduction variable.
func (d Dim) IsRVar() bool {
	return d.DimType == PureRVar || d.DimType == ImpureRVar
}

// IsParallel returns true if iterations of the loop may run concurrently.
func (d Dim) IsParallel() bool {
	return d.ForType.IsParallel()
}

func (d Dim) String() string {
	return fmt.Sprintf("%s %s", d.ForType.String(), d.Var)
}

// PrefetchBoundStrategy is how a prefetch handles out-of-bound accesses.
type PrefetchBoundStrategy int

// Prefetch bound strategies.
const (
	PrefetchClamp PrefetchBoundStrategy = iota
	PrefetchGuardWithIf
	PrefetchNonFaulting
)
