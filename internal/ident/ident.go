// Package ident provides the identifier interner: every name the compiler
// manipulates — variables, labels, struct tags — is reduced to a small,
// value-typed, totally-ordered integer that is cheap to copy and to use as
// a map key.
package ident

import "fmt"

// ID is an opaque reference into the interner's string table. Two IDs
// compare equal iff the underlying strings are equal.
type ID int32

// String renders the ID for debugging; callers that need the underlying
// text go through a Table.
func (id ID) String() string { return fmt.Sprintf("id#%d", int32(id)) }

// Table interns strings to IDs and mints fresh names for three independent
// namespaces: labels, variables, and struct tags. It is the sole owner of
// the monotonic counters that make generated names unique.
type Table struct {
	strings    []string
	index      map[string]ID
	labelSeq   int
	varSeq     int
	structSeq  int
}

// NewTable returns an empty interner.
func NewTable() *Table {
	return &Table{index: make(map[string]ID)}
}

// Intern returns the ID for s, allocating a new one if s has not been seen.
func (t *Table) Intern(s string) ID {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := ID(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = id
	return id
}

// Name returns the interned string for id. Panics if id is out of range;
// callers only ever hold IDs this table minted.
func (t *Table) Name(id ID) string {
	return t.strings[int(id)]
}

// NewLabel mints a fresh label name derived from hint, e.g. "if_end.3".
func (t *Table) NewLabel(hint string) ID {
	t.labelSeq++
	return t.Intern(fmt.Sprintf("%s.%d", hint, t.labelSeq))
}

// NewVar mints a fresh variable name derived from hint, e.g. "tmp.7".
func (t *Table) NewVar(hint string) ID {
	t.varSeq++
	return t.Intern(fmt.Sprintf("%s.%d", hint, t.varSeq))
}

// NewStruct mints a fresh struct-tag name derived from hint, e.g. "anon.2".
func (t *Table) NewStruct(hint string) ID {
	t.structSeq++
	return t.Intern(fmt.Sprintf("%s.%d", hint, t.structSeq))
}
