// Package optimize implements the two data-flow-driven peephole passes,
// copy propagation and dead-store elimination, on top of
// internal/cfg and internal/dataflow.
package optimize

import (
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// writes reports the single scalar variable an instruction assigns, if
// any — including FunCall's Dst (nil for a void call) and CopyToOffset's
// struct destination. Store and the control-flow instructions never
// "write a scalar" in this sense (Store writes through a pointer, not to
// a named variable the passes track).
func writes(instr tac.Instruction) (ident.ID, bool) {
	var dst tac.Value
	switch n := instr.(type) {
	case *tac.SignExtend:
		dst = n.Dst
	case *tac.Truncate:
		dst = n.Dst
	case *tac.ZeroExtend:
		dst = n.Dst
	case *tac.DoubleToInt:
		dst = n.Dst
	case *tac.DoubleToUInt:
		dst = n.Dst
	case *tac.IntToDouble:
		dst = n.Dst
	case *tac.UIntToDouble:
		dst = n.Dst
	case *tac.FunCall:
		dst = n.Dst
	case *tac.Unary:
		dst = n.Dst
	case *tac.Binary:
		dst = n.Dst
	case *tac.Copy:
		dst = n.Dst
	case *tac.GetAddress:
		dst = n.Dst
	case *tac.Load:
		dst = n.Dst
	case *tac.AddPtr:
		dst = n.Dst
	case *tac.CopyFromOffset:
		return variableName(n.Dst)
	case *tac.CopyToOffset:
		return n.DstName, true
	default:
		return 0, false
	}
	if dst == nil {
		return 0, false
	}
	return variableName(dst)
}

func variableName(v tac.Value) (ident.ID, bool) {
	variable, ok := v.(tac.Variable)
	if !ok {
		return 0, false
	}
	return variable.Name, true
}

// reads returns every variable name read by instr — every scalar Value it
// consumes, registering every value mentioned by a transfer-kind
// instruction. CopyToOffset and CopyFromOffset name their struct operand
// directly (not as a tac.Value), but a struct is tracked as one aggregate
// variable, so both its base name and its Value operand count as reads:
// a partial write must not make the analysis think the rest of the
// struct's prior contents are dead.
func reads(instr tac.Instruction) []ident.ID {
	var vals []tac.Value
	var names []ident.ID
	switch n := instr.(type) {
	case *tac.Return:
		if n.Val != nil {
			vals = []tac.Value{n.Val}
		}
	case *tac.SignExtend:
		vals = []tac.Value{n.Src}
	case *tac.Truncate:
		vals = []tac.Value{n.Src}
	case *tac.ZeroExtend:
		vals = []tac.Value{n.Src}
	case *tac.DoubleToInt:
		vals = []tac.Value{n.Src}
	case *tac.DoubleToUInt:
		vals = []tac.Value{n.Src}
	case *tac.IntToDouble:
		vals = []tac.Value{n.Src}
	case *tac.UIntToDouble:
		vals = []tac.Value{n.Src}
	case *tac.FunCall:
		vals = n.Args
	case *tac.Unary:
		vals = []tac.Value{n.Src}
	case *tac.Binary:
		vals = []tac.Value{n.Src1, n.Src2}
	case *tac.Copy:
		vals = []tac.Value{n.Src}
	case *tac.GetAddress:
		vals = []tac.Value{n.Src}
	case *tac.Load:
		vals = []tac.Value{n.SrcPtr}
	case *tac.Store:
		vals = []tac.Value{n.Src, n.DstPtr}
	case *tac.AddPtr:
		vals = []tac.Value{n.SrcPtr, n.Idx}
	case *tac.CopyToOffset:
		vals = []tac.Value{n.Src}
		names = append(names, n.DstName)
	case *tac.CopyFromOffset:
		names = append(names, n.SrcName)
	case *tac.JumpIfZero:
		vals = []tac.Value{n.Cond}
	case *tac.JumpIfNotZero:
		vals = []tac.Value{n.Cond}
	}

	out := append([]ident.ID(nil), names...)
	for _, v := range vals {
		if name, ok := variableName(v); ok {
			out = append(out, name)
		}
	}
	return out
}

// hasSideEffect reports whether instr must be kept even if its write target
// is dead: FunCall, Store, and CopyToOffset into an address-taken
// or static destination.
func hasSideEffect(instr tac.Instruction, isObservable func(ident.ID) bool) bool {
	switch n := instr.(type) {
	case *tac.FunCall:
		return true
	case *tac.Store:
		return true
	case *tac.CopyToOffset:
		return isObservable(n.DstName)
	}
	return false
}
