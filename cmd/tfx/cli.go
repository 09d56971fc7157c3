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
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options is the parsed command line.
type options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Command    string
	Args       []string
}

const usage = `
tfx - type-specialized function dispatch demo.

Usage:
  tfx [options] list
  tfx [options] get TYPE
  tfx [options] call FUNC EXPR
  tfx [options] eval FUNC EXPR

Commands:
  list        Print every registered specialization.
  get TYPE    Call get<TYPE>() for TYPE in int, float64 (double), Foo.
  call        Convert the HCL expression EXPR to a Go value and dispatch FUNC on it.
  eval        Dispatch FUNC on the raw HCL value of EXPR (e.g. describe).

Options:
`

// parse processes command-line arguments. It returns the parsed options, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func parse(args []string, output io.Writer) (*options, bool, error) {
	flagSet := flag.NewFlagSet("tfx", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	opts := &options{
		ConfigPath: *configFlag,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		Command:    flagSet.Arg(0),
		Args:       flagSet.Args()[1:],
	}
	if want, ok := commandArgs[opts.Command]; !ok {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", opts.Command)}
	} else if len(opts.Args) != want {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s: expected %d argument(s), got %d", opts.Command, want, len(opts.Args))}
	}
	return opts, false, nil
}

// commandArgs is the number of positional arguments each command takes.
var commandArgs = map[string]int{
	"list": 0,
	"get":  1,
	"call": 2,
	"eval": 2,
}
