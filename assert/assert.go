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

// Package assert provides the fluent test assertion helper used across
// this repository's test files, in the same "For(t).That(v)...." shape as
// the teacher's core/assert, trimmed to what this module's tests need (see
// DESIGN.md for what was not ported).
package assert

import (
	"fmt"
	"reflect"
)

// Output is anything that can receive a test failure message. *testing.T
// and *testing.B both satisfy it.
type Output interface {
	Helper()
	Errorf(format string, args ...interface{})
}

// Assertion is the root of the fluent interface, bound to an Output.
type Assertion struct {
	out  Output
	name string
}

// For starts a new assertion chain, naming the value under test for the
// failure message.
func For(out Output, name string, args ...interface{}) Assertion {
	if len(args) > 0 {
		name = fmt.Sprintf(name, args...)
	}
	return Assertion{out: out, name: name}
}

// That returns an OnValue wrapping value for the comparison methods.
func (a Assertion) That(value interface{}) OnValue {
	return OnValue{a: a, value: value}
}

// OnValue carries the value under test through to the terminal assertion
// call.
type OnValue struct {
	a     Assertion
	value interface{}
}

func (o OnValue) fail(format string, args ...interface{}) bool {
	o.a.out.Helper()
	o.a.out.Errorf("%s: %s", o.a.name, fmt.Sprintf(format, args...))
	return false
}

// Equals asserts value == expect using ==, for comparable scalar types.
func (o OnValue) Equals(expect interface{}) bool {
	o.a.out.Helper()
	if o.value == expect {
		return true
	}
	return o.fail("got %v, want %v", o.value, expect)
}

// DeepEquals asserts deep structural equality via reflect.DeepEqual.
func (o OnValue) DeepEquals(expect interface{}) bool {
	o.a.out.Helper()
	if reflect.DeepEqual(o.value, expect) {
		return true
	}
	return o.fail("got %v, want %v", o.value, expect)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// IsNil asserts that the value, including typed nils, is nil.
func (o OnValue) IsNil() bool {
	o.a.out.Helper()
	if isNil(o.value) {
		return true
	}
	return o.fail("got %v, want nil", o.value)
}

// IsNotNil asserts the inverse of IsNil.
func (o OnValue) IsNotNil() bool {
	o.a.out.Helper()
	if !isNil(o.value) {
		return true
	}
	return o.fail("got nil, want non-nil")
}

// IsTrue asserts the value is the boolean true.
func (o OnValue) IsTrue() bool {
	o.a.out.Helper()
	if b, ok := o.value.(bool); ok && b {
		return true
	}
	return o.fail("got %v, want true", o.value)
}

// IsFalse asserts the value is the boolean false.
func (o OnValue) IsFalse() bool {
	o.a.out.Helper()
	if b, ok := o.value.(bool); ok && !b {
		return true
	}
	return o.fail("got %v, want false", o.value)
}
