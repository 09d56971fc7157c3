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
	"dirpx.dev/tfx/apis"
)

const (
	// DefaultWarnOnReplace represents the default for WarnOnReplace.
	// When true, overwriting a specialization logs a warning.
	DefaultWarnOnReplace = true
	// DefaultForeignTypes represents the default for ForeignTypes.
	// When true, cty values are dispatched on their cty type.
	DefaultForeignTypes = true
	// DefaultMaxArity represents the default for MaxArity.
	// A value of 16 should be sufficient for all practical purposes.
	DefaultMaxArity = 16
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxArity is valid.
	if cfg.MaxArity <= 0 {
		cfg.MaxArity = DefaultMaxArity
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		WarnOnReplace: DefaultWarnOnReplace,
		ForeignTypes:  DefaultForeignTypes,
		MaxArity:      DefaultMaxArity,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithWarnOnReplace sets the WarnOnReplace option.
func WithWarnOnReplace(warn bool) Option {
	return func(c *apis.Config) {
		c.WarnOnReplace = warn
	}
}

// WithForeignTypes sets the ForeignTypes option.
func WithForeignTypes(enabled bool) Option {
	return func(c *apis.Config) {
		c.ForeignTypes = enabled
	}
}

// WithMaxArity sets the MaxArity option.
// A non-positive value resets to the default.
func WithMaxArity(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxArity = DefaultMaxArity
			return
		}
		c.MaxArity = max
	}
}
