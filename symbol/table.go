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

package symbol

import "sort"

// Entry is a single value. Table is intentionally generic over what it
// stores: declarations, for passes; codegen ids, for emitters. A caller
// of Table always knows what its own Index into Decls means.
type entry struct {
	name  string
	index int
}

type byName []entry

func (a byName) Len() int           { return len(a) }
func (a byName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byName) Less(i, j int) bool { return a[i].name < a[j].name }

// Table is a single named lookup within one Category, mirroring
// gapil/semantic.Symbols: entries are appended in declaration order (so
// Table.Index is dense and stable across passes, per spec §3.1) and
// sorted lazily on first lookup using a stable sort for deterministic
// iteration when names collide.
type Table struct {
	entries byName
	sorted  bool
}

// Add appends name at the next dense index and returns that index. It
// does not itself reject duplicate names — ambiguity is a lookup-time
// concern (see Find), since shadowing in nested scopes is legal and only
// resolved at the point of reference.
func (t *Table) Add(name string) int {
	idx := len(t.entries)
	t.entries = append(t.entries, entry{name: name, index: idx})
	t.sorted = false
	return idx
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) sort() {
	if !t.sorted {
		sort.Stable(t.entries)
		t.sorted = true
	}
}

func (t *Table) search(name string) int {
	t.sort()
	return sort.Search(len(t.entries), func(i int) bool { return t.entries[i].name >= name })
}

// Find returns the index for name. ok is false if no entry has that
// name. ambiguous is true if more than one entry shares the name (the
// caller should raise diag.AmbiguousCall).
func (t *Table) Find(name string) (index int, ok bool, ambiguous bool) {
	i := t.search(name)
	if i >= len(t.entries) || t.entries[i].name != name {
		return 0, false, false
	}
	idx := t.entries[i].index
	if i+1 < len(t.entries) && t.entries[i+1].name == name {
		return idx, true, true
	}
	return idx, true, false
}

// FindAll returns every index registered under name, in declaration
// order, used when resolving an overloaded call (spec §4.2/§4.4
// AmbiguousCall is only raised once overload resolution itself fails to
// narrow to one candidate; FindAll supplies the candidate set).
func (t *Table) FindAll(name string) []int {
	i := t.search(name)
	var out []int
	for ; i < len(t.entries) && t.entries[i].name == name; i++ {
		out = append(out, t.entries[i].index)
	}
	return out
}
