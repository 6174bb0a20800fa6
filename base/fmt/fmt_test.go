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

package fmt_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	gxfmt "github.com/gx-org/hlsc/base/fmt"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{
			src:  "",
			want: "",
		},
		{
			src:  "void f() {\n}\n",
			want: "1 void f() {\n2 }\n",
		},
		{
			src:  "no trailing newline",
			want: "1 no trailing newline",
		},
		{
			src: "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\n",
			want: "01 l1\n02 l2\n03 l3\n04 l4\n05 l5\n" +
				"06 l6\n07 l7\n08 l8\n09 l9\n10 l10\n",
		},
	}
	for _, test := range tests {
		got := gxfmt.Number(test.src)
		if got != test.want {
			t.Errorf("got:\n%s\nbut want:\n%s\ndiff:\n%s", got, test.want, cmp.Diff(got, test.want))
		}
	}
}
