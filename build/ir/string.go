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

package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/hlsc/base/stringseq"
)

func (e *IntImm) String() string { return strconv.FormatInt(e.Value, 10) }

func (e *UIntImm) String() string { return strconv.FormatUint(e.Value, 10) + "u" }

func (e *FloatImm) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) + "f" }

func (e *StringImm) String() string { return strconv.Quote(e.Value) }

func (e *Variable) String() string { return e.Name }

func (e *Cast) String() string {
	return fmt.Sprintf("%s(%s)", e.Typ.String(), e.X.String())
}

func (e *BinaryExpr) String() string {
	if e.Op.IsFunction() {
		return fmt.Sprintf("%s(%s, %s)", e.Op.String(), e.X.String(), e.Y.String())
	}
	return fmt.Sprintf("(%s %s %s)", e.X.String(), e.Op.String(), e.Y.String())
}

func (e *Not) String() string { return "!" + e.X.String() }

func (e *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", e.Cond.String(), e.True.String(), e.False.String())
}

func (e *Load) String() string {
	return fmt.Sprintf("%s[%s]", e.Name, e.Index.String())
}

func exprsString(exprs []Expr) string {
	return stringseq.JoinStringer(slices.Values(exprs), ", ")
}

func (e *Call) String() string {
	return fmt.Sprintf("%s(%s)", e.Name, exprsString(e.Args))
}

func (e *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", e.Name, e.Value.String(), e.Body.String())
}

type stmtWriter struct {
	b      strings.Builder
	indent int
}

func (w *stmtWriter) line(format string, a ...any) {
	w.b.WriteString(strings.Repeat("  ", w.indent))
	fmt.Fprintf(&w.b, format, a...)
	w.b.WriteString("\n")
}

func (w *stmtWriter) nested(s Stmt) {
	w.indent++
	w.stmt(s)
	w.indent--
}

func (w *stmtWriter) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case nil:
	case *LetStmt:
		w.line("let %s = %s", s.Name, s.Value.String())
		w.stmt(s.Body)
	case *AssertStmt:
		w.line("assert(%s, %s)", s.Cond.String(), s.Message.String())
	case *ProducerConsumer:
		w.line("produce %s {", s.Name)
		w.nested(s.Produce)
		w.line("}")
		w.line("consume %s {", s.Name)
		w.nested(s.Consume)
		w.line("}")
	case *For:
		w.line("%s (%s, %s, %s) {", s.ForType.String(), s.Name, s.Min.String(), s.Extent.String())
		w.nested(s.Body)
		w.line("}")
	case *Store:
		w.line("%s[%s] = %s", s.Name, s.Index.String(), s.Value.String())
	case *Provide:
		w.line("%s(%s) = %s", s.Name, exprsString(s.Args), exprsString(s.Values))
	case *Allocate:
		w.line("allocate %s[%s * %s] in %s", s.Name, s.Typ.String(), exprsString(s.Extents), s.MemoryType.String())
		w.stmt(s.Body)
	case *Free:
		w.line("free %s", s.Name)
	case *Realize:
		bounds := make([]string, len(s.Bounds))
		for i, r := range s.Bounds {
			bounds[i] = fmt.Sprintf("[%s, %s]", r.Min.String(), r.Extent.String())
		}
		w.line("realize %s(%s) {", s.Name, strings.Join(bounds, ", "))
		w.nested(s.Body)
		w.line("}")
	case *Block:
		w.stmt(s.First)
		w.stmt(s.Rest)
	case *IfThenElse:
		w.line("if (%s) {", s.Cond.String())
		w.nested(s.Then)
		if s.Else != nil {
			w.line("} else {")
			w.nested(s.Else)
		}
		w.line("}")
	case *Evaluate:
		w.line("%s", s.Value.String())
	default:
		w.line("<unknown statement %T>", s)
	}
}

func stmtString(s Stmt) string {
	var w stmtWriter
	w.stmt(s)
	return w.b.String()
}

func (s *LetStmt) String() string { return stmtString(s) }

func (s *AssertStmt) String() string { return stmtString(s) }

func (s *ProducerConsumer) String() string { return stmtString(s) }

func (s *For) String() string { return stmtString(s) }

func (s *Store) String() string { return stmtString(s) }

func (s *Provide) String() string { return stmtString(s) }

func (s *Allocate) String() string { return stmtString(s) }

func (s *Free) String() string { return stmtString(s) }

func (s *Realize) String() string { return stmtString(s) }

func (s *Block) String() string { return stmtString(s) }

func (s *IfThenElse) String() string { return stmtString(s) }

func (s *Evaluate) String() string { return stmtString(s) }
