package optimize

import (
	"github.com/wheelcc/wheelcc/internal/cfg"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// Mask mirrors the CLI driver's optim1_mask bitfield: bit0 constant
// folding, bit1 unreachable-code elimination, bit2 copy propagation,
// bit3 dead-store elimination.
type Mask uint8

const (
	ConstantFolding Mask = 1 << iota
	UnreachableCodeElim
	CopyPropagation
	DeadStoreElim
)

// Run applies every pass mask selects to fn, in place. The CFG-based
// passes (unreachable-code elimination, copy propagation, dead-store
// elimination) iterate to a fixed point since each can expose further
// opportunities for the others — a copy propagated into a branch
// condition can make a block provably dead, and a removed dead store can
// make its operand's defining copy dead in turn.
func Run(fn *tac.Function, fe *fetype.FrontEndSymbols, mask Mask) {
	if mask&ConstantFolding != 0 {
		foldConstants(fn)
	}

	const cfgPasses = UnreachableCodeElim | CopyPropagation | DeadStoreElim
	if mask&cfgPasses == 0 {
		return
	}

	for {
		g := cfg.Build(fn)
		changed := false
		if mask&UnreachableCodeElim != 0 && eliminateUnreachable(g) {
			changed = true
		}
		if mask&CopyPropagation != 0 && CopyPropagate(g, fe) {
			changed = true
		}
		if mask&DeadStoreElim != 0 && EliminateDeadStores(g, fe) {
			changed = true
		}
		compact(fn)
		if !changed {
			return
		}
	}
}

func compact(fn *tac.Function) {
	out := fn.Instructions[:0]
	for _, instr := range fn.Instructions {
		if instr != nil {
			out = append(out, instr)
		}
	}
	fn.Instructions = out
}

// eliminateUnreachable removes every instruction in a block that no path
// from the function's entry can reach, per optim1_mask bit1.
func eliminateUnreachable(g *cfg.Graph) bool {
	reachable := make(map[int]bool, len(g.Blocks))
	var stack []int
	for _, id := range entrySuccessors(g) {
		if !reachable[id] {
			reachable[id] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range g.Blocks[id].Succs {
			if s == g.ExitID || reachable[s] {
				continue
			}
			reachable[s] = true
			stack = append(stack, s)
		}
	}

	changed := false
	for id, b := range g.Blocks {
		if b.Dead() || reachable[id] {
			continue
		}
		for i := b.FrontIndex; i <= b.BackIndex && !b.Dead(); i++ {
			if g.Instructions[i] != nil {
				g.RemoveInstruction(id, i)
				changed = true
			}
		}
	}
	return changed
}

// entrySuccessors finds every block ENTRY points at directly, since ENTRY
// is a sentinel id with no Block struct of its own to read Succs from.
func entrySuccessors(g *cfg.Graph) []int {
	var out []int
	for id, b := range g.Blocks {
		for _, p := range b.Preds {
			if p == g.EntryID {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
