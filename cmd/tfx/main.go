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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/builder"
	"dirpx.dev/tfx/config"
	"dirpx.dev/tfx/examples/templates"
)

// main is the entrypoint for the tfx demo command.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, binds the demo templates into a fresh registry and
// executes one command against it.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg := config.DefaultConfig()
	if opts.ConfigPath != "" {
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
	}

	logger := newLogger(opts.LogLevel, opts.LogFormat, outW)
	reg, err := newRegistry(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("Templates bound.", "functions", reg.Functions(), "count", reg.Count())

	return execute(outW, reg, opts.Command, opts.Args)
}

// newRegistry builds a registry the way the global state does and binds
// the demo templates into it.
func newRegistry(cfg apis.Config, logger *slog.Logger) (apis.Registry, error) {
	b := builder.New()
	reg := b.BuildRegistry(cfg, b.BuildResolver(cfg, logger), nil, logger)
	if _, err := templates.Bind(reg); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}
