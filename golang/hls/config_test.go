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

package hls_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/hlsc/build/ir"
	"github.com/gx-org/hlsc/build/ir/irhelper"
	"github.com/gx-org/hlsc/golang/hls"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HLSC_TARGET_TAG", "_accel.")
	t.Setenv("HLSC_START_CALL", "go_accel")
	t.Setenv("HLSC_INDENT", "4")
	want := hls.Config{
		TargetTag:  "_accel.",
		TargetName: "hls_target",
		StartCall:  "go_accel",
		Indent:     4,
	}
	got, err := hls.ConfigFromEnv()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected configuration (-want +got):\n%s", diff)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	t.Setenv("HLSC_INDENT", "-2")
	if _, err := hls.ConfigFromEnv(); err == nil {
		t.Errorf("expected an error for a negative indentation")
	}
}

func TestReadConfig(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want hls.Config
	}{
		{
			name: "empty",
			want: hls.DefaultConfig(),
		},
		{
			name: "partial",
			src:  "target_name: accel\nindent: 4\n",
			want: hls.Config{
				TargetTag:  "_hls_target.",
				TargetName: "accel",
				StartCall:  "start_hwacc",
				Indent:     4,
			},
		},
		{
			name: "full",
			src:  "target_tag: _accel.\ntarget_name: accel\nstart_call: go_accel\nindent: 0\n",
			want: hls.Config{
				TargetTag:  "_accel.",
				TargetName: "accel",
				StartCall:  "go_accel",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := hls.ReadConfig(strings.NewReader(test.src), hls.DefaultConfig())
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected configuration (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadConfigErrors(t *testing.T) {
	for _, src := range []string{
		"unknown_field: 1\n",
		"indent: -1\n",
		"indent: [1, 2]\n",
		"target_tag: \"\"\n",
		"target_name: \"\"\n",
		"start_call: \"\"\n",
	} {
		if _, err := hls.ReadConfig(strings.NewReader(src), hls.DefaultConfig()); err == nil {
			t.Errorf("ReadConfig(%q): expected an error", src)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := hls.DefaultConfig().Validate(); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
	cfg := hls.DefaultConfig()
	cfg.TargetTag = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for an empty target tag")
	}
	if !strings.Contains(err.Error(), "target tag") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestCustomConfig(t *testing.T) {
	cfg := hls.Config{
		TargetTag:  "_accel.",
		TargetName: "accel",
		StartCall:  "go_accel",
		Indent:     4,
	}
	gen := hls.NewKernelGenerator(cfg)
	tb := hls.NewTestbench(cfg, gen)
	region := &ir.ProducerConsumer{
		Name: "_accel.blur",
		Produce: irhelper.Block(
			irhelper.Eval(irhelper.Intrinsic("go_accel", ir.VoidType())),
			irhelper.Eval(irhelper.Extern("compute", ir.VoidType(), irhelper.IntVar("n"))),
		),
	}
	var out strings.Builder
	if err := tb.Compile(&out, "run", []hls.Argument{{Name: "n", ScalarType: ir.Int32Type()}}, region); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"#include \"accel.h\"\n",
		"int run(int32_t n) {\n",
		"    blur(n);\n",
		"    return 0;\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("%q not found in:\n%s", want, out.String())
		}
	}
	if len(gen.Kernels()) != 1 {
		t.Errorf("got %d kernels but want 1", len(gen.Kernels()))
	}
}
