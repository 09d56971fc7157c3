/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"dirpx.dev/tfx/apis"
)

// fileConfig is the HCL shape of a config file. Every attribute is optional:
//
//	warn_on_replace = false
//	foreign_types   = true
//	max_arity       = 8
type fileConfig struct {
	WarnOnReplace *bool `hcl:"warn_on_replace,optional"`
	ForeignTypes  *bool `hcl:"foreign_types,optional"`
	MaxArity      *int  `hcl:"max_arity,optional"`
}

// Load reads the HCL config file at path. See Parse.
func Load(path string, opts ...Option) (apis.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(src, path, opts...)
}

// Parse decodes an HCL config document. Attributes missing from the document
// keep their defaults; opts are applied after the document so code wins.
// Unknown attributes and blocks are reported as HCL diagnostics.
func Parse(src []byte, filename string, opts ...Option) (apis.Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return apis.Config{}, diags
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(f.Body, nil, &fc); diags.HasErrors() {
		return apis.Config{}, diags
	}

	fileOpts := make([]Option, 0, 3+len(opts))
	if fc.WarnOnReplace != nil {
		fileOpts = append(fileOpts, WithWarnOnReplace(*fc.WarnOnReplace))
	}
	if fc.ForeignTypes != nil {
		fileOpts = append(fileOpts, WithForeignTypes(*fc.ForeignTypes))
	}
	if fc.MaxArity != nil {
		if *fc.MaxArity <= 0 {
			return apis.Config{}, fmt.Errorf("config: %s: max_arity must be positive, got %d", filename, *fc.MaxArity)
		}
		fileOpts = append(fileOpts, WithMaxArity(*fc.MaxArity))
	}
	return NewConfig(append(fileOpts, opts...)...), nil
}
