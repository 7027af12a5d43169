package tacbuild

import (
	"fmt"

	"github.com/wheelcc/wheelcc/internal/ident"
	"github.com/wheelcc/wheelcc/internal/tac"
)

var unaryOps = map[string]tac.UnaryOp{
	"complement": tac.UnaryComplement,
	"negate":     tac.UnaryNegate,
	"not":        tac.UnaryNot,
}

var binaryOps = map[string]tac.BinaryOp{
	"add":        tac.BinAdd,
	"sub":        tac.BinSub,
	"mult":       tac.BinMult,
	"divide":     tac.BinDivide,
	"remainder":  tac.BinRemainder,
	"bitand":     tac.BinBitAnd,
	"bitor":      tac.BinBitOr,
	"bitxor":     tac.BinBitXor,
	"shl":        tac.BinBitShiftLeft,
	"shr":        tac.BinBitShiftRight,
	"sar":        tac.BinBitShrArithmetic,
	"eq":         tac.BinEqual,
	"ne":         tac.BinNotEqual,
	"lt":         tac.BinLessThan,
	"le":         tac.BinLessOrEqual,
	"gt":         tac.BinGreaterThan,
	"ge":         tac.BinGreaterOrEqual,
}

func (b *builder) instruction(w wireInstr) (tac.Instruction, error) {
	v := func(wv *wireValue) (tac.Value, error) { return b.value(wv) }
	name := func(s string) ident.ID { return b.idents.Intern(s) }

	switch w.Op {
	case "return":
		val, err := v(w.Val)
		if err != nil {
			return nil, err
		}
		return &tac.Return{Val: val}, nil
	case "signextend", "truncate", "zeroextend", "doubletoint", "doubletouint", "inttodouble", "uinttodouble":
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return convertInstr(w.Op, src, dst)
	case "funcall":
		args := make([]tac.Value, len(w.Args))
		for i := range w.Args {
			arg, err := v(&w.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.FunCall{Name: name(w.FunName), Args: args, Dst: dst}, nil
	case "unary":
		op, ok := unaryOps[w.Op2]
		if !ok {
			return nil, fmt.Errorf("tacbuild: unknown unary op %q", w.Op2)
		}
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.Unary{Op: op, Src: src, Dst: dst}, nil
	case "binary":
		op, ok := binaryOps[w.Op2]
		if !ok {
			return nil, fmt.Errorf("tacbuild: unknown binary op %q", w.Op2)
		}
		src1, err := v(w.Src1)
		if err != nil {
			return nil, err
		}
		src2, err := v(w.Src2)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.Binary{Op: op, Src1: src1, Src2: src2, Dst: dst}, nil
	case "copy":
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.Copy{Src: src, Dst: dst}, nil
	case "getaddress":
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.GetAddress{Src: src, Dst: dst}, nil
	case "load":
		srcPtr, err := v(w.SrcPtr)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.Load{SrcPtr: srcPtr, Dst: dst}, nil
	case "store":
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		dstPtr, err := v(w.DstPtr)
		if err != nil {
			return nil, err
		}
		return &tac.Store{Src: src, DstPtr: dstPtr}, nil
	case "addptr":
		srcPtr, err := v(w.SrcPtr)
		if err != nil {
			return nil, err
		}
		idx, err := v(w.Idx)
		if err != nil {
			return nil, err
		}
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.AddPtr{SrcPtr: srcPtr, Idx: idx, Scale: w.Scale, Dst: dst}, nil
	case "copytooffset":
		src, err := v(w.Src)
		if err != nil {
			return nil, err
		}
		return &tac.CopyToOffset{Src: src, DstName: name(w.DstName), Offset: w.Offset}, nil
	case "copyfromoffset":
		dst, err := v(w.Dst)
		if err != nil {
			return nil, err
		}
		return &tac.CopyFromOffset{SrcName: name(w.SrcName), Offset: w.Offset, Dst: dst}, nil
	case "jump":
		return &tac.Jump{Target: name(w.Target)}, nil
	case "jumpifzero":
		cond, err := v(w.Cond)
		if err != nil {
			return nil, err
		}
		return &tac.JumpIfZero{Cond: cond, Target: name(w.Target)}, nil
	case "jumpifnotzero":
		cond, err := v(w.Cond)
		if err != nil {
			return nil, err
		}
		return &tac.JumpIfNotZero{Cond: cond, Target: name(w.Target)}, nil
	case "label":
		return &tac.Label{Name: name(w.Name)}, nil
	default:
		return nil, fmt.Errorf("tacbuild: unknown instruction op %q", w.Op)
	}
}

func convertInstr(op string, src, dst tac.Value) (tac.Instruction, error) {
	switch op {
	case "signextend":
		return &tac.SignExtend{Src: src, Dst: dst}, nil
	case "truncate":
		return &tac.Truncate{Src: src, Dst: dst}, nil
	case "zeroextend":
		return &tac.ZeroExtend{Src: src, Dst: dst}, nil
	case "doubletoint":
		return &tac.DoubleToInt{Src: src, Dst: dst}, nil
	case "doubletouint":
		return &tac.DoubleToUInt{Src: src, Dst: dst}, nil
	case "inttodouble":
		return &tac.IntToDouble{Src: src, Dst: dst}, nil
	case "uinttodouble":
		return &tac.UIntToDouble{Src: src, Dst: dst}, nil
	default:
		return nil, fmt.Errorf("tacbuild: unreachable conversion op %q", op)
	}
}
