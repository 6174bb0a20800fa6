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

package fmterr

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

// InternalError is an error raised when an invariant of the compiler is broken.
// It always denotes a bug in an earlier pass and is never recovered from:
// functions detecting an internal error panic with it.
type InternalError struct {
	err error
}

// Internalf returns a new internal error given a format and arguments.
func Internalf(format string, a ...any) *InternalError {
	return &InternalError{err: errors.Errorf(format, a...)}
}

// Panicf panics with a new internal error.
func Panicf(format string, a ...any) {
	panic(Internalf(format, a...))
}

// Assert panics with an internal error if cond is false.
func Assert(cond bool, format string, a ...any) {
	if cond {
		return
	}
	panic(Internalf(format, a...))
}

// FromPanic returns the internal error carried by a recovered panic value.
// Any other value is a programming error: the panic continues.
func FromPanic(r any) *InternalError {
	if r == nil {
		return nil
	}
	iErr, ok := r.(*InternalError)
	if !ok {
		panic(r)
	}
	return iErr
}

func (err *InternalError) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	return "HLS compiler internal error. This is a bug in the compiler. Please report it. Error:\n" + err.err.Error()
}

// Unwrap returns the underlying error.
func (err *InternalError) Unwrap() error {
	return err.err
}

// Format the error. The verb %+v includes the stack trace where the error was generated.
func (err *InternalError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}
