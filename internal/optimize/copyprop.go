package optimize

import (
	"github.com/wheelcc/wheelcc/internal/cfg"
	"github.com/wheelcc/wheelcc/internal/dataflow"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// copyFact is one tracked "dst := src" fact, indexed by its Copy
// instruction's position in the function's instruction vector.
type copyFact struct {
	InstrIdx int
	Src      tac.Value
	Dst      ident.ID
}

// CopyPropagate runs forward reaching-copies over g and rewrites
// every use it can resolve to a single reaching value, in place. It
// reports whether it changed anything.
func CopyPropagate(g *cfg.Graph, fe *fetype.FrontEndSymbols) bool {
	copies := collectCopies(g)
	if len(copies) == 0 {
		return false
	}
	indexOf := make(map[int]int, len(copies))
	for k, c := range copies {
		indexOf[c.InstrIdx] = k
	}

	setSize := len(copies)
	initRow := dataflow.SetAll(setSize)
	sentinel := dataflow.NewMask(setSize)

	transfer := func(idx int, row dataflow.Mask) {
		applyCopyTransfer(g, fe, copies, indexOf, idx, row)
	}
	rows := dataflow.Solve(g, setSize, dataflow.Forward, initRow, sentinel, transfer)

	changed := false
	for id, b := range g.Blocks {
		if b.Dead() {
			continue
		}
		row := dataflow.Meet(g, setSize, dataflow.Forward, id, rows, sentinel)
		for i := b.FrontIndex; i <= b.BackIndex; i++ {
			if g.Instructions[i] == nil {
				continue
			}
			if rewriteInstruction(g.Instructions[i], copies, row) {
				changed = true
			}
			applyCopyTransfer(g, fe, copies, indexOf, i, row)
		}
	}
	return changed
}

func collectCopies(g *cfg.Graph) []copyFact {
	var out []copyFact
	for i, instr := range g.Instructions {
		cp, ok := instr.(*tac.Copy)
		if !ok {
			continue
		}
		dstName, ok := variableName(cp.Dst)
		if !ok {
			continue
		}
		if srcName, isVar := variableName(cp.Src); isVar && srcName == dstName {
			continue // trivial self-copy: never tracked
		}
		out = append(out, copyFact{InstrIdx: i, Src: cp.Src, Dst: dstName})
	}
	return out
}

func applyCopyTransfer(g *cfg.Graph, fe *fetype.FrontEndSymbols, copies []copyFact, indexOf map[int]int, idx int, row dataflow.Mask) {
	instr := g.Instructions[idx]
	if instr == nil {
		return
	}

	if cp, ok := instr.(*tac.Copy); ok {
		if dstName, ok2 := variableName(cp.Dst); ok2 {
			killFactsMentioning(copies, row, dstName)
		}
		if k, ok2 := indexOf[idx]; ok2 {
			row.Set(k, true)
		}
		return
	}

	if name, ok := writes(instr); ok {
		killFactsMentioning(copies, row, name)
	}

	switch instr.(type) {
	case *tac.FunCall, *tac.Store:
		for addr := range fe.AddressedSet {
			killFactsMentioning(copies, row, addr)
		}
	}
}

func killFactsMentioning(copies []copyFact, row dataflow.Mask, name ident.ID) {
	for k, c := range copies {
		if c.Dst == name {
			row.Set(k, false)
			continue
		}
		if srcName, isVar := variableName(c.Src); isVar && srcName == name {
			row.Set(k, false)
		}
	}
}

// resolve reports the single value every currently-reaching fact with
// Dst == name agrees on, if any (a "same c" unanimity requirement).
func resolve(copies []copyFact, row dataflow.Mask, name ident.ID) (tac.Value, bool) {
	var found tac.Value
	have := false
	for k, c := range copies {
		if c.Dst != name || !row.Get(k) {
			continue
		}
		if !have {
			found = c.Src
			have = true
			continue
		}
		if !sameValue(found, c.Src) {
			return nil, false
		}
	}
	return found, have
}

func rewriteInstruction(instr tac.Instruction, copies []copyFact, row dataflow.Mask) bool {
	changed := false
	replace := func(v *tac.Value) {
		variable, ok := (*v).(tac.Variable)
		if !ok {
			return
		}
		newVal, ok := resolve(copies, row, variable.Name)
		if !ok || sameValue(newVal, variable) {
			return
		}
		*v = newVal
		changed = true
	}

	switch n := instr.(type) {
	case *tac.Return:
		if n.Val != nil {
			replace(&n.Val)
		}
	case *tac.SignExtend:
		replace(&n.Src)
	case *tac.Truncate:
		replace(&n.Src)
	case *tac.ZeroExtend:
		replace(&n.Src)
	case *tac.DoubleToInt:
		replace(&n.Src)
	case *tac.DoubleToUInt:
		replace(&n.Src)
	case *tac.IntToDouble:
		replace(&n.Src)
	case *tac.UIntToDouble:
		replace(&n.Src)
	case *tac.FunCall:
		for i := range n.Args {
			replace(&n.Args[i])
		}
	case *tac.Unary:
		replace(&n.Src)
	case *tac.Binary:
		replace(&n.Src1)
		replace(&n.Src2)
	case *tac.Copy:
		replace(&n.Src)
	case *tac.Load:
		replace(&n.SrcPtr)
	case *tac.Store:
		replace(&n.Src)
		replace(&n.DstPtr)
	case *tac.AddPtr:
		replace(&n.SrcPtr)
		replace(&n.Idx)
	case *tac.CopyToOffset:
		replace(&n.Src)
	case *tac.JumpIfZero:
		replace(&n.Cond)
	case *tac.JumpIfNotZero:
		replace(&n.Cond)
	}
	return changed
}

func sameValue(a, b tac.Value) bool {
	switch av := a.(type) {
	case tac.Variable:
		bv, ok := b.(tac.Variable)
		return ok && av.Name == bv.Name
	case tac.Constant:
		bv, ok := b.(tac.Constant)
		return ok && sameConst(av.Const, bv.Const)
	}
	return false
}

func sameConst(a, b fetype.Const) bool {
	switch av := a.(type) {
	case fetype.ConstInt:
		bv, ok := b.(fetype.ConstInt)
		return ok && av.Value == bv.Value
	case fetype.ConstLong:
		bv, ok := b.(fetype.ConstLong)
		return ok && av.Value == bv.Value
	case fetype.ConstUInt:
		bv, ok := b.(fetype.ConstUInt)
		return ok && av.Value == bv.Value
	case fetype.ConstULong:
		bv, ok := b.(fetype.ConstULong)
		return ok && av.Value == bv.Value
	case fetype.ConstChar:
		bv, ok := b.(fetype.ConstChar)
		return ok && av.Value == bv.Value
	case fetype.ConstUChar:
		bv, ok := b.(fetype.ConstUChar)
		return ok && av.Value == bv.Value
	case fetype.ConstDouble:
		bv, ok := b.(fetype.ConstDouble)
		return ok && av.Value == bv.Value
	}
	return false
}
