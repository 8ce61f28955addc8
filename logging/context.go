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

import "context"

type handlerKey struct{}
type tagKey struct{}

// Bind returns a new context carrying h as the active handler.
func Bind(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey{}, h)
}

// Tag returns a new context that prefixes every message logged through it
// with tag, the same way a pass or emitter identifies itself in its trace
// lines.
func Tag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, tagKey{}, tag)
}

func handlerFrom(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey{}).(Handler); ok {
		return h
	}
	return Discard
}

func tagFrom(ctx context.Context) string {
	tag, _ := ctx.Value(tagKey{}).(string)
	return tag
}

func emit(ctx context.Context, s Severity, format string, args ...interface{}) {
	handlerFrom(ctx).Handle(Message{
		Severity: s,
		Tag:      tagFrom(ctx),
		Text:     sprintf(format, args...),
	})
}
