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
	"context"
	"fmt"
)

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// V logs at Verbose severity.
func V(ctx context.Context, format string, args ...interface{}) { emit(ctx, Verbose, format, args...) }

// D logs at Debug severity.
func D(ctx context.Context, format string, args ...interface{}) { emit(ctx, Debug, format, args...) }

// I logs at Info severity.
func I(ctx context.Context, format string, args ...interface{}) { emit(ctx, Info, format, args...) }

// W logs at Warning severity.
func W(ctx context.Context, format string, args ...interface{}) { emit(ctx, Warning, format, args...) }

// E logs at Error severity.
func E(ctx context.Context, format string, args ...interface{}) { emit(ctx, Error, format, args...) }

// F logs at Fatal severity. It does not itself panic or exit; callers that
// want that behavior wrap F with their own control flow, matching the
// teacher's separation of logging from process lifecycle (core/app owns
// that instead).
func F(ctx context.Context, format string, args ...interface{}) { emit(ctx, Fatal, format, args...) }
