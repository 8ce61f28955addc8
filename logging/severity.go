// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides a small context-scoped leveled logger used by
// the transformation executor, individual passes and the code emitters to
// report progress without forcing a concrete logging backend on callers.
package logging

// Severity defines how important a logging message is.
type Severity int32

const (
	// Verbose indicates extremely verbose level messages.
	Verbose Severity = iota
	// Debug indicates debug-level messages, such as per-pass trace lines.
	Debug
	// Info indicates minor informational messages.
	Info
	// Warning indicates issues that do not stop compilation.
	Warning
	// Error indicates a diagnostic was raised.
	Error
	// Fatal indicates an unrecoverable internal failure.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Short returns a single-character form of the severity, used by the
// default handler's line prefix.
func (s Severity) Short() string {
	if s < Verbose || s > Fatal {
		return "?"
	}
	return "VDIWEF"[s : s+1]
}
