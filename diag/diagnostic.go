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

package diag

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// ErrorLimit bounds how many diagnostics a single compile accumulates
// before it gives up, mirroring parse.ParseErrorLimit in the teacher.
var ErrorLimit = 20

// Abort is the sentinel panic value used to unwind out of a pass once
// ErrorLimit has been reached. The executor recovers it at the top level.
const Abort = constError("diag: abort")

type constError string

func (e constError) Error() string { return string(e) }

// Diagnostic is a single compiler diagnostic: a kind, a human message and
// the span it applies to.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Location Location
	Stack    []byte // populated only for Kind == Internal
}

// New constructs a Diagnostic with a formatted message.
func New(kind Kind, loc Location, format string, args ...interface{}) Diagnostic {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Diagnostic{Kind: kind, Message: msg, Location: loc}
}

// Internalf wraps a recovered panic value into an Internal diagnostic,
// capturing a stack trace the way the teacher's parse.Error does on Add.
// This is the shape spec §4.5/§7 describe for emitter invariant failures:
// "the emitter itself does not produce user-visible diagnostics; it
// assumes a fully-validated input. Invariant violations are fatal
// assertion failures" — recovered here and reframed as an Internal
// diagnostic so the caller still gets a single structured error out of
// Compile rather than a raw panic.
func Internalf(recovered interface{}, format string, args ...interface{}) Diagnostic {
	d := New(Internal, Location{}, format, args...)
	d.Message = errors.Wrapf(fmt.Errorf("%v", recovered), "%s", d.Message).Error()
	var stack [1 << 16]byte
	n := runtime.Stack(stack[:], false)
	d.Stack = append([]byte(nil), stack[:n]...)
	return d
}

// Error implements error.
func (d Diagnostic) Error() string { return d.Message }

// Format implements fmt.Formatter so that "%v" prints
// "file:line:col: kind: msg" ("kind: msg" when the location is not
// valid), the location-first layout of the teacher's parse.Error.Format.
func (d Diagnostic) Format(f fmt.State, c rune) {
	if !d.Location.IsValid() {
		fmt.Fprintf(f, "%s: %s", d.Kind, d.Message)
		return
	}
	fmt.Fprintf(f, "%s: %s: %s", d.Location, d.Kind, d.Message)
}
