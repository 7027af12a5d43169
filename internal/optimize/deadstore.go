package optimize

import (
	"github.com/wheelcc/wheelcc/internal/cfg"
	"github.com/wheelcc/wheelcc/internal/dataflow"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// EliminateDeadStores runs backward live-variable analysis over g and
// removes every instruction whose write target is dead at that point and
// which has no side effect, via g.RemoveInstruction. It reports whether it
// removed anything.
func EliminateDeadStores(g *cfg.Graph, fe *fetype.FrontEndSymbols) bool {
	universe := collectTrackedVars(g)
	if len(universe) == 0 {
		return false
	}
	indexOf := make(map[ident.ID]int, len(universe))
	for k, name := range universe {
		indexOf[name] = k
	}
	isObservable := func(name ident.ID) bool {
		sym, ok := fe.Symbols[name]
		return ok && (fe.AddressedSet[name] || fetype.IsStatic(sym))
	}

	setSize := len(universe)
	initRow := dataflow.NewMask(setSize)

	// EXIT's seed: every static-storage variable the function can touch
	// is observable after it returns, so it must start live there.
	sentinel := dataflow.NewMask(setSize)
	for k, name := range universe {
		if isObservable(name) {
			sentinel.Set(k, true)
		}
	}

	transfer := func(idx int, row dataflow.Mask) {
		applyLivenessTransfer(indexOf, g.Instructions[idx], row)
	}
	rows := dataflow.Solve(g, setSize, dataflow.Backward, initRow, sentinel, transfer)

	changed := false
	for id, b := range g.Blocks {
		if b.Dead() {
			continue
		}
		// live-out of the block, recomputed from its successors' converged
		// live-in rows — rows[id] itself already holds id's own live-in.
		row := dataflow.Meet(g, setSize, dataflow.Backward, id, rows, sentinel)
		for i := b.BackIndex; i >= b.FrontIndex; i-- {
			instr := g.Instructions[i]
			if instr == nil {
				continue
			}
			if name, ok := writes(instr); ok {
				if k := indexOf[name]; !row.Get(k) && !hasSideEffect(instr, isObservable) {
					g.RemoveInstruction(id, i)
					changed = true
					continue
				}
			}
			applyLivenessTransfer(indexOf, instr, row)
		}
	}
	return changed
}

func collectTrackedVars(g *cfg.Graph) []ident.ID {
	seen := map[ident.ID]bool{}
	var out []ident.ID
	add := func(name ident.ID) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, instr := range g.Instructions {
		if instr == nil {
			continue
		}
		if name, ok := writes(instr); ok {
			add(name)
		}
		for _, name := range reads(instr) {
			add(name)
		}
	}
	return out
}

func applyLivenessTransfer(indexOf map[ident.ID]int, instr tac.Instruction, row dataflow.Mask) {
	if instr == nil {
		return
	}
	if name, ok := writes(instr); ok {
		if k, tracked := indexOf[name]; tracked {
			row.Set(k, false)
		}
	}
	for _, name := range reads(instr) {
		if k, tracked := indexOf[name]; tracked {
			row.Set(k, true)
		}
	}
}
