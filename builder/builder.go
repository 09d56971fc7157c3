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

package builder

import (
	"log/slog"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/registry"
	"dirpx.dev/tfx/resolver"
	"dirpx.dev/tfx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
//
// The extension value is interpreted in one way only: a *slog.Logger passed
// as ext becomes the logger of built registries.
type builder struct{}

// BuildResolver builds the standard chain. The cty strategy is left out when
// cfg.ForeignTypes is false.
func (b *builder) BuildResolver(cfg apis.Config, _ any) apis.Resolver {
	if !cfg.ForeignTypes {
		return resolver.New(
			strategy.NewTypedStrategy(),
			strategy.NewReflectStrategy(),
		)
	}
	return resolver.Default()
}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry. Entries the new configuration rejects (e.g. keys longer than
// MaxArity) are dropped and logged at Warn. A sealed registry yields a sealed one.
func (b *builder) BuildRegistry(cfg apis.Config, res apis.Resolver, prev apis.Registry, ext any) apis.Registry {
	logger := slog.Default()
	if l, ok := ext.(*slog.Logger); ok && l != nil {
		logger = l
	}
	nreg := registry.New(cfg, res, registry.WithLogger(logger))
	if prev != nil {
		for _, e := range prev.Entries() {
			if err := nreg.Register(e.Name, e.Key, e.Impl); err != nil {
				logger.Warn("Dropping template specialization.", "name", e.Name, "key", e.Key.String(), "error", err)
			}
		}
		if prev.Sealed() {
			nreg.Seal()
		}
	}
	return nreg
}
