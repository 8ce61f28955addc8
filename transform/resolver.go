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

package transform

import "github.com/shaderlang/slc/tree"

// ModuleResolver is the external collaborator of spec §5/§6.1: an object
// invoked synchronously by the Resolve pass to fetch an imported module's
// already-built tree by its logical (dotted) name. "It must be
// idempotent for a given logical module name" (spec §5) — the Resolve
// pass may call it more than once for the same path across a single
// compile (e.g. two sibling imports of the same module) and relies on
// getting back an equivalent tree each time.
type ModuleResolver interface {
	ResolveModule(path string) (*tree.Module, error)
}

// ModuleResolverFunc adapts a plain function to a ModuleResolver.
type ModuleResolverFunc func(path string) (*tree.Module, error)

// ResolveModule calls f(path).
func (f ModuleResolverFunc) ResolveModule(path string) (*tree.Module, error) { return f(path) }

// NoImports is a ModuleResolver that rejects every import, for compiles
// of a module known to have none.
var NoImports ModuleResolver = ModuleResolverFunc(func(path string) (*tree.Module, error) {
	return nil, errNoResolver(path)
})

type errNoResolver string

func (e errNoResolver) Error() string {
	return "transform: no module resolver configured for " + string(e)
}
