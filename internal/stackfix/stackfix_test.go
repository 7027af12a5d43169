package stackfix

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

func TestSlotAssigner_DistinctNamesDistinctSlots(t *testing.T) {
	backend := asmtype.Table{}
	s := newSlotAssigner(backend)
	a := s.slotFor(ident.ID(1))
	b := s.slotFor(ident.ID(2))
	if a == b {
		t.Errorf("slotFor gave the same offset %d to two distinct pseudos", a)
	}
	if a >= -reservedBytes {
		t.Errorf("first pseudo slot %d overlaps the reserved region (< -%d)", a, reservedBytes)
	}
}

func TestSlotAssigner_SameNameSameSlot(t *testing.T) {
	s := newSlotAssigner(asmtype.Table{})
	name := ident.ID(5)
	first := s.slotFor(name)
	second := s.slotFor(name)
	if first != second {
		t.Errorf("slotFor(%v) returned %d then %d, want stable", name, first, second)
	}
}

func TestSlotAssigner_FrameSizeIsSixteenByteAligned(t *testing.T) {
	s := newSlotAssigner(asmtype.Table{})
	s.slotFor(ident.ID(1))
	if got := s.frameSize(); got%16 != 0 {
		t.Errorf("frameSize() = %d, not a multiple of 16", got)
	}
}

func TestResolveOperand_PseudoBecomesMemory(t *testing.T) {
	s := newSlotAssigner(asmtype.Table{})
	name := ident.ID(9)
	op := s.resolveOperand(asm.Pseudo{Name: name})
	mem, ok := op.(asm.Memory)
	if !ok {
		t.Fatalf("resolveOperand(Pseudo) = %T, want asm.Memory", op)
	}
	if mem.Base != asm.Bp {
		t.Errorf("Memory.Base = %v, want Bp", mem.Base)
	}
	if mem.Offset != s.slotFor(name) {
		t.Errorf("Memory.Offset = %d, want %d", mem.Offset, s.slotFor(name))
	}
}

func TestLegalize_MemToMemMovSplitsThroughScratch(t *testing.T) {
	src := asm.Memory{Offset: -8, Base: asm.Bp}
	dst := asm.Memory{Offset: -16, Base: asm.Bp}
	out := legalize(&asm.Mov{Type: asmtype.QuadWord{}, Src: src, Dst: dst})
	if len(out) != 2 {
		t.Fatalf("legalize(mem->mem Mov) produced %d instructions, want 2", len(out))
	}
	first := out[0].(*asm.Mov)
	second := out[1].(*asm.Mov)
	if first.Dst != second.Src {
		t.Errorf("scratch register mismatch between split Movs: %#v vs %#v", first.Dst, second.Src)
	}
	if first.Src != src || second.Dst != dst {
		t.Errorf("split Movs lost the original operands: %#v / %#v", first, second)
	}
}

func TestLegalize_WideImmediateMovSplits(t *testing.T) {
	wide := asm.ImmFromInt64(1<<40, false, true)
	out := legalize(&asm.Mov{Type: asmtype.QuadWord{}, Src: wide, Dst: asm.Register{Reg: asm.Ax}})
	if len(out) != 2 {
		t.Fatalf("legalize(wide imm Mov) produced %d instructions, want 2", len(out))
	}
	pre := out[0].(*asm.Mov)
	if pre.Src != wide {
		t.Errorf("first split Mov should carry the wide immediate, got %#v", pre.Src)
	}
}

func TestLegalize_SmallImmediateMovUnchanged(t *testing.T) {
	small := asm.ImmFromInt64(5, false, true)
	in := &asm.Mov{Type: asmtype.QuadWord{}, Src: small, Dst: asm.Register{Reg: asm.Ax}}
	out := legalize(in)
	if len(out) != 1 || out[0] != in {
		t.Errorf("legalize(small imm Mov) = %v, want unchanged single instruction", out)
	}
}

func TestLegalize_ImmediateDivisorGoesThroughScratch(t *testing.T) {
	imm := asm.ImmFromInt64(3, false, false)
	out := legalize(&asm.Idiv{Type: asmtype.LongWord{}, Src: imm})
	if len(out) != 2 {
		t.Fatalf("legalize(Idiv with immediate divisor) produced %d instructions, want 2", len(out))
	}
	mov := out[0].(*asm.Mov)
	idiv := out[1].(*asm.Idiv)
	if mov.Dst != idiv.Src {
		t.Errorf("Idiv should divide by the register the immediate was moved into")
	}
}

func TestLegalize_MovSxToMemoryDstGoesThroughScratch(t *testing.T) {
	dst := asm.Memory{Offset: -8, Base: asm.Bp}
	out := legalize(&asm.MovSx{TypeSrc: asmtype.LongWord{}, TypeDst: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Ax}, Dst: dst})
	if len(out) != 2 {
		t.Fatalf("legalize(MovSx with memory dst) produced %d instructions, want 2", len(out))
	}
	tail := out[1].(*asm.Mov)
	if tail.Dst != dst {
		t.Errorf("trailing Mov should land in the original destination, got %#v", tail.Dst)
	}
}

func TestWithPrologueEpilogue_WrapsEachReturn(t *testing.T) {
	body := []asm.Instruction{
		&asm.Ret{},
		&asm.Ret{},
	}
	out := withPrologueEpilogue(body, 32)
	// push %rbp; mov %rsp,%rbp; sub $32,%rsp; then per Ret: mov/pop/ret x2
	if _, ok := out[0].(*asm.Push); !ok {
		t.Errorf("first instruction = %T, want *asm.Push (the frame-pointer push)", out[0])
	}
	var rets int
	for _, instr := range out {
		if _, ok := instr.(*asm.Ret); ok {
			rets++
		}
	}
	if rets != 2 {
		t.Errorf("found %d Ret instructions after rewriting, want 2 (one per original Ret)", rets)
	}
}

func TestWithPrologueEpilogue_NoSubWhenFrameEmpty(t *testing.T) {
	out := withPrologueEpilogue([]asm.Instruction{&asm.Ret{}}, 0)
	for _, instr := range out {
		if bin, ok := instr.(*asm.BinaryInstr); ok && bin.Op == asm.OpSub {
			t.Error("withPrologueEpilogue emitted a stack-pointer subtraction for a zero-size frame")
		}
	}
}

func TestFix_EndToEnd(t *testing.T) {
	name := ident.ID(1)
	fn := &asm.Function{
		Name: ident.ID(100),
		Instructions: []asm.Instruction{
			&asm.Mov{Type: asmtype.LongWord{}, Src: asm.ImmFromInt64(1, false, false), Dst: asm.Pseudo{Name: name}},
			&asm.Ret{},
		},
	}
	prog := &asm.Program{TopLevels: []asm.TopLevel{fn}}
	Fix(prog, asmtype.Table{})

	for _, instr := range fn.Instructions {
		mov, ok := instr.(*asm.Mov)
		if !ok {
			continue
		}
		if _, stillPseudo := mov.Dst.(asm.Pseudo); stillPseudo {
			t.Errorf("Fix() left an unresolved Pseudo operand: %#v", mov)
		}
	}
	if _, ok := fn.Instructions[0].(*asm.Push); !ok {
		t.Errorf("Fix() did not prepend the frame-pointer prologue, first instruction is %T", fn.Instructions[0])
	}
}
