// Package stackfix is the pseudo-register rewrite pass that follows
// internal/asmgen and precedes internal/gasemit: it replaces every
// Pseudo/PseudoMem operand with a concrete %rbp-relative Memory operand,
// inserts the function prologue/epilogue, and splits the handful of
// instruction shapes GAS can't encode directly (two memory operands, an
// immediate too wide for its operand width).
//
// This pass sits outside the core's instruction-selection proper, treated
// as an external collaborator; it is supplied here as a straightforward
// linear scan rather than anything resembling a real register allocator.
// Register allocation itself is out of scope, and this pass never
// attempts it — every pseudo gets its own stack slot, spilled for the
// whole function.
package stackfix

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

// Fix rewrites every Function in prog in place.
func Fix(prog *asm.Program, backend asmtype.Table) {
	for _, top := range prog.TopLevels {
		if fn, ok := top.(*asm.Function); ok {
			fixFunction(fn, backend)
		}
	}
}

func fixFunction(fn *asm.Function, backend asmtype.Table) {
	slots := newSlotAssigner(backend)

	rewritten := make([]asm.Instruction, len(fn.Instructions))
	for i, instr := range fn.Instructions {
		rewritten[i] = slots.rewriteInstruction(instr)
	}

	legalized := make([]asm.Instruction, 0, len(rewritten)*2)
	for _, instr := range rewritten {
		legalized = append(legalized, legalize(instr)...)
	}

	fn.Instructions = withPrologueEpilogue(legalized, slots.frameSize())
}
