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

// Package hls generates the code of a pipeline running parts of its
// computation on a hardware accelerator.
//
// Regions of the pipeline to accelerate are delimited in the IR by a
// ir.ProducerConsumer node tagged with a target prefix. The testbench
// generator replaces each region with a call to a kernel generated by a
// nested target generator from the body of the region.
package hls

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Config of the code generators.
type Config struct {
	// TargetTag prefixes the name of the ir.ProducerConsumer nodes
	// delimiting accelerated regions.
	TargetTag  string `yaml:"target_tag"`
	// TargetName is the name of the generated target files, without extension.
	TargetName string `yaml:"target_name"`
	// StartCall is the intrinsic starting the accelerator at the beginning
	// of an accelerated region.
	StartCall  string `yaml:"start_call"`
	// Indent is the number of spaces per indentation level.
	Indent     int    `yaml:"indent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TargetTag:  "_hls_target.",
		TargetName: "hls_target",
		StartCall:  "start_hwacc",
		Indent:     2,
	}
}

// Validate returns an error if a field of the configuration cannot be used
// to generate code.
func (cfg Config) Validate() error {
	for _, field := range []struct {
		name, value string
	}{
		{"target tag", cfg.TargetTag},
		{"target name", cfg.TargetName},
		{"start call", cfg.StartCall},
	} {
		if field.value == "" {
			return errors.Errorf("invalid configuration: empty %s", field.name)
		}
	}
	if cfg.Indent < 0 {
		return errors.Errorf("invalid configuration: negative indentation %d", cfg.Indent)
	}
	return nil
}

// ConfigFromEnv returns the default configuration overwritten by the
// environment variables HLSC_TARGET_TAG, HLSC_TARGET_NAME, HLSC_START_CALL,
// and HLSC_INDENT.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.TargetTag = env.Str("HLSC_TARGET_TAG", cfg.TargetTag)
	cfg.TargetName = env.Str("HLSC_TARGET_NAME", cfg.TargetName)
	cfg.StartCall = env.Str("HLSC_START_CALL", cfg.StartCall)
	cfg.Indent = env.Int("HLSC_INDENT", cfg.Indent)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), errors.WithMessage(err, "environment")
	}
	return cfg, nil
}

// ReadConfig reads a YAML configuration from r. Fields absent from the
// document keep their value in base.
func ReadConfig(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return base, nil
		}
		return base, errors.Wrap(err, "cannot decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
