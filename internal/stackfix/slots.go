package stackfix

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// reservedBytes is the frame space asmgen always assumes is available below
// %rbp for its own bookkeeping, regardless of whether this particular
// function ends up using it: the hidden return pointer at -8(%rbp) and the
// two struct-packing scratch slots at -16(%rbp)/-24(%rbp) (internal/asmgen's
// structreg.go). Pseudo slot assignment starts below this reserved region.
const reservedBytes = 24

// slotAssigner hands out a %rbp-relative Memory operand for every distinct
// Pseudo/PseudoMem name it sees, growing the frame downward, and rewrites
// every operand in an instruction to use it.
type slotAssigner struct {
	backend asmtype.Table
	offsets map[ident.ID]int64
	next    int64 // next free offset, negative, shrinking
}

func newSlotAssigner(backend asmtype.Table) *slotAssigner {
	return &slotAssigner{
		backend: backend,
		offsets: map[ident.ID]int64{},
		next:    -reservedBytes,
	}
}

// slotFor returns the base offset of name's stack slot, assigning one on
// first sight. size/align come from the backend symbol table so aggregates
// get their exact size and every slot lands on its required alignment.
func (s *slotAssigner) slotFor(name ident.ID) int64 {
	if off, ok := s.offsets[name]; ok {
		return off
	}
	size, align := s.typeOf(name)
	s.next -= size
	if rem := (-s.next) % align; rem != 0 {
		s.next -= align - rem
	}
	s.offsets[name] = s.next
	return s.next
}

func (s *slotAssigner) typeOf(name ident.ID) (size, align int64) {
	sym, ok := s.backend[name]
	if !ok || sym.Obj == nil {
		return 8, 8
	}
	return sym.Obj.Type.Size(), sym.Obj.Type.Alignment()
}

// frameSize returns the total local-frame size, rounded up to a 16-byte
// boundary per the System V stack-alignment requirement.
func (s *slotAssigner) frameSize() int64 {
	total := -s.next
	if rem := total % 16; rem != 0 {
		total += 16 - rem
	}
	return total
}

func (s *slotAssigner) resolveOperand(op asm.Operand) asm.Operand {
	switch v := op.(type) {
	case asm.Pseudo:
		return asm.Memory{Offset: s.slotFor(v.Name), Base: asm.Bp}
	case asm.PseudoMem:
		return asm.Memory{Offset: s.slotFor(v.Name) + v.Offset, Base: asm.Bp}
	default:
		return op
	}
}

func (s *slotAssigner) rewriteInstruction(instr asm.Instruction) asm.Instruction {
	switch n := instr.(type) {
	case *asm.Mov:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.MovSx:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.MovZeroExtend:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.Lea:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.Cvttsd2si:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.Cvtsi2sd:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.UnaryInstr:
		n.Dst = s.resolveOperand(n.Dst)
	case *asm.BinaryInstr:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.Cmp:
		n.Src, n.Dst = s.resolveOperand(n.Src), s.resolveOperand(n.Dst)
	case *asm.Idiv:
		n.Src = s.resolveOperand(n.Src)
	case *asm.Div:
		n.Src = s.resolveOperand(n.Src)
	case *asm.SetCC:
		n.Dst = s.resolveOperand(n.Dst)
	case *asm.Push:
		n.Src = s.resolveOperand(n.Src)
	}
	return instr
}
