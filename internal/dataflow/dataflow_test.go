package dataflow

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/cfg"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

func TestMask_SetGetClear(t *testing.T) {
	m := NewMask(70) // exercises the two-word case
	m.Set(3, true)
	m.Set(65, true)
	if !m.Get(3) || !m.Get(65) {
		t.Fatalf("Set/Get round-trip failed for bits 3 and 65")
	}
	m.Set(3, false)
	if m.Get(3) {
		t.Errorf("bit 3 still set after Set(3, false)")
	}
	if !m.Get(65) {
		t.Errorf("bit 65 should be unaffected by clearing bit 3")
	}
}

func TestMask_AndOr(t *testing.T) {
	a := NewMask(8)
	a.Set(0, true)
	a.Set(1, true)
	b := NewMask(8)
	b.Set(1, true)
	b.Set(2, true)

	and := a.Clone()
	and.And(b)
	if and.Get(0) || !and.Get(1) || and.Get(2) {
		t.Errorf("And result wrong: bit0=%v bit1=%v bit2=%v, want false/true/false", and.Get(0), and.Get(1), and.Get(2))
	}

	or := a.Clone()
	or.Or(b)
	if !or.Get(0) || !or.Get(1) || !or.Get(2) {
		t.Errorf("Or result wrong: bit0=%v bit1=%v bit2=%v, want true/true/true", or.Get(0), or.Get(1), or.Get(2))
	}
}

func TestMask_SetAll_TruncatesLastWord(t *testing.T) {
	m := SetAll(4)
	for i := 0; i < 4; i++ {
		if !m.Get(i) {
			t.Errorf("SetAll(4): bit %d not set", i)
		}
	}
	if m[0]&^uint64(0xf) != 0 {
		t.Errorf("SetAll(4) left stray high bits set: %#x", m[0])
	}
}

func TestMask_Equal(t *testing.T) {
	a := NewMask(8)
	b := NewMask(8)
	a.Set(2, true)
	if a.Equal(b) {
		t.Error("Equal() true for masks that differ")
	}
	b.Set(2, true)
	if !a.Equal(b) {
		t.Error("Equal() false for identical masks")
	}
}

func TestSolve_PropagatesAcrossEdge(t *testing.T) {
	label := ident.ID(1)
	fn := &tac.Function{
		Instructions: []tac.Instruction{
			&tac.Jump{Target: label}, // block 0
			&tac.Label{Name: label},  // block 1
			&tac.Return{},            // block 1
		},
	}
	g := cfg.Build(fn)

	transfer := func(idx int, row Mask) {
		switch idx {
		case 0:
			row.Set(0, true)
		case 2:
			row.Set(1, true)
		}
	}

	rows := Solve(g, 8, Forward, NewMask(8), NewMask(8), transfer)
	if len(rows) != 2 {
		t.Fatalf("Solve() returned %d rows, want 2", len(rows))
	}
	if !rows[0].Get(0) {
		t.Errorf("block 0's row should have bit 0 set after its own transfer")
	}
	if !rows[1].Get(0) || !rows[1].Get(1) {
		t.Errorf("block 1's row should carry bit 0 (from block 0) and set bit 1 itself, got %v/%v", rows[1].Get(0), rows[1].Get(1))
	}
}

func TestSolve_EmptyGraph(t *testing.T) {
	g := cfg.Build(&tac.Function{})
	rows := Solve(g, 4, Forward, NewMask(4), NewMask(4), func(int, Mask) {})
	if len(rows) != 0 {
		t.Errorf("Solve(empty graph) returned %d rows, want 0", len(rows))
	}
}
