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

package tmpl_test

import (
	"strings"
	"testing"
	"text/template"

	"github.com/gx-org/hlsc/base/tmpl"
	"github.com/pkg/errors"
)

type proto struct {
	Name, Params string
}

func TestIterateTmpl(t *testing.T) {
	protoTmpl := template.Must(template.New("proto").Parse("void {{.Name}}({{.Params}});\n"))
	got, err := tmpl.IterateTmpl([]proto{
		{Name: "f", Params: "int x"},
		{Name: "g"},
	}, protoTmpl)
	if err != nil {
		t.Fatal(err)
	}
	if want := "void f(int x);\nvoid g();\n"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestIterateTmplError(t *testing.T) {
	badTmpl := template.Must(template.New("bad").Parse("{{.Missing}}"))
	_, err := tmpl.IterateTmpl([]proto{{Name: "f"}}, badTmpl)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "template bad") {
		t.Errorf("error %q does not name the template", err.Error())
	}
}

func TestIterateFunc(t *testing.T) {
	got, err := tmpl.IterateFunc([]string{"a", "b"}, func(i int, s string) (string, error) {
		return strings.Repeat(s, i+1), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\nbb"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	errStop := errors.New("stop")
	if _, err := tmpl.IterateFunc([]string{"a"}, func(int, string) (string, error) {
		return "", errStop
	}); !errors.Is(err, errStop) {
		t.Errorf("got error %v but want %v", err, errStop)
	}
}
