package tacbuild

import (
	"fmt"

	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

func (b *builder) value(v *wireValue) (tac.Value, error) {
	if v == nil {
		return nil, nil
	}
	if v.Const != nil {
		c, err := constOf(*v.Const)
		if err != nil {
			return nil, err
		}
		return tac.Constant{Const: c}, nil
	}
	if v.Var == "" {
		return nil, fmt.Errorf("tacbuild: value has neither const nor var")
	}
	return tac.Variable{Name: b.idents.Intern(v.Var)}, nil
}

func constOf(w wireConst) (fetype.Const, error) {
	switch w.Kind {
	case "int":
		return fetype.ConstInt{Value: int32(w.Value)}, nil
	case "long":
		return fetype.ConstLong{Value: int64(w.Value)}, nil
	case "uint":
		return fetype.ConstUInt{Value: uint32(w.Value)}, nil
	case "ulong":
		return fetype.ConstULong{Value: uint64(w.Value)}, nil
	case "char":
		return fetype.ConstChar{Value: int8(w.Value)}, nil
	case "uchar":
		return fetype.ConstUChar{Value: uint8(w.Value)}, nil
	case "double":
		return fetype.ConstDouble{Value: w.Value}, nil
	default:
		return nil, fmt.Errorf("tacbuild: unknown constant kind %q", w.Kind)
	}
}

// mentionedVars returns every Variable name an instruction reads or
// writes, used by registerMentionedFallbacks to make sure every TAC-level name has a
// symbol-table entry even when the fixture's "locals" map left it out.
func mentionedVars(instr tac.Instruction) []ident.ID {
	var out []ident.ID
	add := func(v tac.Value) {
		if v == nil {
			return
		}
		if va, ok := v.(tac.Variable); ok {
			out = append(out, va.Name)
		}
	}
	switch n := instr.(type) {
	case *tac.Return:
		add(n.Val)
	case *tac.SignExtend:
		add(n.Src)
		add(n.Dst)
	case *tac.Truncate:
		add(n.Src)
		add(n.Dst)
	case *tac.ZeroExtend:
		add(n.Src)
		add(n.Dst)
	case *tac.DoubleToInt:
		add(n.Src)
		add(n.Dst)
	case *tac.DoubleToUInt:
		add(n.Src)
		add(n.Dst)
	case *tac.IntToDouble:
		add(n.Src)
		add(n.Dst)
	case *tac.UIntToDouble:
		add(n.Src)
		add(n.Dst)
	case *tac.FunCall:
		for _, a := range n.Args {
			add(a)
		}
		add(n.Dst)
	case *tac.Unary:
		add(n.Src)
		add(n.Dst)
	case *tac.Binary:
		add(n.Src1)
		add(n.Src2)
		add(n.Dst)
	case *tac.Copy:
		add(n.Src)
		add(n.Dst)
	case *tac.GetAddress:
		add(n.Src)
		add(n.Dst)
	case *tac.Load:
		add(n.SrcPtr)
		add(n.Dst)
	case *tac.Store:
		add(n.Src)
		add(n.DstPtr)
	case *tac.AddPtr:
		add(n.SrcPtr)
		add(n.Idx)
		add(n.Dst)
	case *tac.CopyToOffset:
		add(n.Src)
		out = append(out, n.DstName)
	case *tac.CopyFromOffset:
		out = append(out, n.SrcName)
		add(n.Dst)
	case *tac.JumpIfZero:
		add(n.Cond)
	case *tac.JumpIfNotZero:
		add(n.Cond)
	}
	return out
}
