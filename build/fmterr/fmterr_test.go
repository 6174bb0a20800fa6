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

package fmterr_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gx-org/hlsc/build/fmterr"
	"github.com/pkg/errors"
)

func TestErrorsContext(t *testing.T) {
	var errs fmterr.Errors
	errs.Append(errors.Errorf("first"))
	errs.Push(fmterr.FuncPrefix("f"))
	errs.Append(errors.Errorf("second"))
	errs.Append(nil)
	errs.Pop()
	errs.Push(fmterr.FuncPrefix("g"))
	errs.Pop()
	got := errs.Errors()
	if len(got) != 2 {
		t.Fatalf("got %d errors but want 2: %v", len(got), got)
	}
	if want := `function "f": second`; got[1].Error() != want {
		t.Errorf("got %q but want %q", got[1].Error(), want)
	}
	if errs.ToError() == nil {
		t.Errorf("ToError() returned nil")
	}
	var empty fmterr.Errors
	if err := empty.ToError(); err != nil {
		t.Errorf("ToError() = %v but want nil", err)
	}
}

func TestAssert(t *testing.T) {
	defer func() {
		iErr := fmterr.FromPanic(recover())
		if iErr == nil {
			t.Fatal("Assert(false) did not panic")
		}
		if !strings.Contains(iErr.Error(), "broken invariant 42") {
			t.Errorf("unexpected error message: %s", iErr.Error())
		}
		if !strings.Contains(fmt.Sprintf("%+v", iErr), "Error generated at") {
			t.Errorf("no stack trace in %+v", iErr)
		}
		var target *fmterr.InternalError
		if !errors.As(fmt.Errorf("wrapped: %w", iErr), &target) {
			t.Errorf("internal error not found in a wrapped error")
		}
	}()
	fmterr.Assert(true, "should not fail")
	fmterr.Assert(false, "broken invariant %d", 42)
}
