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

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Message is a single log record.
type Message struct {
	Severity Severity
	Tag      string // the pass or emitter that produced this message
	Text     string
}

// Handler receives log messages. Implementations must be safe to call from
// multiple goroutines, although a single compile is single-threaded (§5).
type Handler interface {
	Handle(Message)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(Message)

// Handle calls f(m).
func (f HandlerFunc) Handle(m Message) { f(m) }

// WriterHandler writes formatted messages to w, filtering out anything
// below min.
func WriterHandler(w io.Writer, min Severity) Handler {
	return &writerHandler{w: w, min: min}
}

type writerHandler struct {
	mu  sync.Mutex
	w   io.Writer
	min Severity
}

func (h *writerHandler) Handle(m Message) {
	if m.Severity < h.min {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if m.Tag != "" {
		fmt.Fprintf(h.w, "%s[%s] %s\n", m.Severity.Short(), m.Tag, m.Text)
	} else {
		fmt.Fprintf(h.w, "%s: %s\n", m.Severity.Short(), m.Text)
	}
}

// Discard is a Handler that drops every message. It is the default handler
// for a context that never called Bind.
var Discard Handler = HandlerFunc(func(Message) {})

// Default returns a Handler that writes Warning and above to stderr, the
// same minimum severity the teacher's CLI front-ends default to.
func Default() Handler {
	return WriterHandler(os.Stderr, Warning)
}
