package ident

import "testing"

func TestIntern_SameStringSameID(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("foo")
	if a != b {
		t.Errorf("Intern(%q) = %v, Intern(%q) = %v, want equal", "foo", a, "foo", b)
	}
	c := tbl.Intern("bar")
	if a == c {
		t.Errorf("Intern(%q) and Intern(%q) collided on %v", "foo", "bar", a)
	}
}

func TestName_RoundTrips(t *testing.T) {
	tbl := NewTable()
	id := tbl.Intern("counter")
	if got := tbl.Name(id); got != "counter" {
		t.Errorf("Name(%v) = %q, want %q", id, got, "counter")
	}
}

func TestNewLabel_Uniqueness(t *testing.T) {
	tbl := NewTable()
	a := tbl.NewLabel("if_end")
	b := tbl.NewLabel("if_end")
	if a == b {
		t.Errorf("NewLabel(%q) minted the same ID twice: %v", "if_end", a)
	}
	if got := tbl.Name(a); got != "if_end.1" {
		t.Errorf("Name(first NewLabel) = %q, want %q", got, "if_end.1")
	}
	if got := tbl.Name(b); got != "if_end.2" {
		t.Errorf("Name(second NewLabel) = %q, want %q", got, "if_end.2")
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	tbl := NewTable()
	label := tbl.NewLabel("x")
	v := tbl.NewVar("x")
	s := tbl.NewStruct("x")
	if tbl.Name(label) != "x.1" || tbl.Name(v) != "x.1" || tbl.Name(s) != "x.1" {
		t.Errorf("expected independent counters each starting at 1, got label=%q var=%q struct=%q", tbl.Name(label), tbl.Name(v), tbl.Name(s))
	}
}
