package optimize

import (
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/tac"
)

// foldConstants rewrites every Unary/Binary instruction whose operands are
// both literal constants of the same concrete type into a Copy of the
// folded result, per optim1_mask bit0. Mixed-type operands are left
// untouched: the front end is responsible for the usual-arithmetic-
// conversion cast that would make them foldable, and that cast itself
// would already appear as a separate TAC instruction here.
func foldConstants(fn *tac.Function) {
	for i, instr := range fn.Instructions {
		switch n := instr.(type) {
		case *tac.Unary:
			if c, ok := n.Src.(tac.Constant); ok {
				if folded, ok := foldUnary(n.Op, c.Const); ok {
					fn.Instructions[i] = &tac.Copy{Src: tac.Constant{Const: folded}, Dst: n.Dst}
				}
			}
		case *tac.Binary:
			c1, ok1 := n.Src1.(tac.Constant)
			c2, ok2 := n.Src2.(tac.Constant)
			if ok1 && ok2 {
				if folded, ok := foldBinary(n.Op, c1.Const, c2.Const); ok {
					fn.Instructions[i] = &tac.Copy{Src: tac.Constant{Const: folded}, Dst: n.Dst}
				}
			}
		}
	}
}

func foldUnary(op tac.UnaryOp, c fetype.Const) (fetype.Const, bool) {
	switch v := c.(type) {
	case fetype.ConstInt:
		r, ok := foldUnaryInt64(op, int64(v.Value))
		if !ok {
			return nil, false
		}
		return fetype.ConstInt{Value: int32(r)}, true
	case fetype.ConstLong:
		r, ok := foldUnaryInt64(op, v.Value)
		if !ok {
			return nil, false
		}
		return fetype.ConstLong{Value: r}, true
	case fetype.ConstUInt:
		r, ok := foldUnaryUint32(op, v.Value)
		if !ok {
			return nil, false
		}
		return fetype.ConstUInt{Value: r}, true
	case fetype.ConstULong:
		r, ok := foldUnaryUint64(op, v.Value)
		if !ok {
			return nil, false
		}
		return fetype.ConstULong{Value: r}, true
	case fetype.ConstChar:
		r, ok := foldUnaryInt64(op, int64(v.Value))
		if !ok {
			return nil, false
		}
		return fetype.ConstChar{Value: int8(r)}, true
	case fetype.ConstUChar:
		r, ok := foldUnaryUint64(op, uint64(v.Value))
		if !ok {
			return nil, false
		}
		return fetype.ConstUChar{Value: uint8(r)}, true
	case fetype.ConstDouble:
		switch op {
		case tac.UnaryNegate:
			return fetype.ConstDouble{Value: -v.Value}, true
		case tac.UnaryNot:
			return boolConst(v.Value == 0), true
		}
	}
	return nil, false
}

func foldUnaryInt64(op tac.UnaryOp, v int64) (int64, bool) {
	switch op {
	case tac.UnaryComplement:
		return ^v, true
	case tac.UnaryNegate:
		return -v, true
	case tac.UnaryNot:
		if v == 0 {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func foldUnaryUint32(op tac.UnaryOp, v uint32) (uint32, bool) {
	switch op {
	case tac.UnaryComplement:
		return ^v, true
	case tac.UnaryNegate:
		return -v, true
	case tac.UnaryNot:
		if v == 0 {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func foldUnaryUint64(op tac.UnaryOp, v uint64) (uint64, bool) {
	switch op {
	case tac.UnaryComplement:
		return ^v, true
	case tac.UnaryNegate:
		return -v, true
	case tac.UnaryNot:
		if v == 0 {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func boolConst(v bool) fetype.Const {
	if v {
		return fetype.ConstInt{Value: 1}
	}
	return fetype.ConstInt{Value: 0}
}

func foldBinary(op tac.BinaryOp, a, b fetype.Const) (fetype.Const, bool) {
	switch av := a.(type) {
	case fetype.ConstInt:
		bv, ok := b.(fetype.ConstInt)
		if !ok {
			return nil, false
		}
		return foldSigned(op, int64(av.Value), int64(bv.Value), func(r int64) fetype.Const { return fetype.ConstInt{Value: int32(r)} })
	case fetype.ConstLong:
		bv, ok := b.(fetype.ConstLong)
		if !ok {
			return nil, false
		}
		return foldSigned(op, av.Value, bv.Value, func(r int64) fetype.Const { return fetype.ConstLong{Value: r} })
	case fetype.ConstChar:
		bv, ok := b.(fetype.ConstChar)
		if !ok {
			return nil, false
		}
		return foldSigned(op, int64(av.Value), int64(bv.Value), func(r int64) fetype.Const { return fetype.ConstChar{Value: int8(r)} })
	case fetype.ConstUInt:
		bv, ok := b.(fetype.ConstUInt)
		if !ok {
			return nil, false
		}
		return foldUnsigned(op, uint64(av.Value), uint64(bv.Value), func(r uint64) fetype.Const { return fetype.ConstUInt{Value: uint32(r)} })
	case fetype.ConstULong:
		bv, ok := b.(fetype.ConstULong)
		if !ok {
			return nil, false
		}
		return foldUnsigned(op, av.Value, bv.Value, func(r uint64) fetype.Const { return fetype.ConstULong{Value: r} })
	case fetype.ConstUChar:
		bv, ok := b.(fetype.ConstUChar)
		if !ok {
			return nil, false
		}
		return foldUnsigned(op, uint64(av.Value), uint64(bv.Value), func(r uint64) fetype.Const { return fetype.ConstUChar{Value: uint8(r)} })
	case fetype.ConstDouble:
		bv, ok := b.(fetype.ConstDouble)
		if !ok {
			return nil, false
		}
		return foldDouble(op, av.Value, bv.Value)
	}
	return nil, false
}

func foldSigned(op tac.BinaryOp, a, b int64, wrap func(int64) fetype.Const) (fetype.Const, bool) {
	switch op {
	case tac.BinAdd:
		return wrap(a + b), true
	case tac.BinSub:
		return wrap(a - b), true
	case tac.BinMult:
		return wrap(a * b), true
	case tac.BinDivide:
		if b == 0 {
			return nil, false
		}
		return wrap(a / b), true
	case tac.BinRemainder:
		if b == 0 {
			return nil, false
		}
		return wrap(a % b), true
	case tac.BinBitAnd:
		return wrap(a & b), true
	case tac.BinBitOr:
		return wrap(a | b), true
	case tac.BinBitXor:
		return wrap(a ^ b), true
	case tac.BinBitShiftLeft:
		return wrap(a << uint(b)), true
	case tac.BinBitShiftRight, tac.BinBitShrArithmetic:
		return wrap(a >> uint(b)), true
	case tac.BinEqual:
		return boolConst(a == b), true
	case tac.BinNotEqual:
		return boolConst(a != b), true
	case tac.BinLessThan:
		return boolConst(a < b), true
	case tac.BinLessOrEqual:
		return boolConst(a <= b), true
	case tac.BinGreaterThan:
		return boolConst(a > b), true
	case tac.BinGreaterOrEqual:
		return boolConst(a >= b), true
	}
	return nil, false
}

func foldUnsigned(op tac.BinaryOp, a, b uint64, wrap func(uint64) fetype.Const) (fetype.Const, bool) {
	switch op {
	case tac.BinAdd:
		return wrap(a + b), true
	case tac.BinSub:
		return wrap(a - b), true
	case tac.BinMult:
		return wrap(a * b), true
	case tac.BinDivide:
		if b == 0 {
			return nil, false
		}
		return wrap(a / b), true
	case tac.BinRemainder:
		if b == 0 {
			return nil, false
		}
		return wrap(a % b), true
	case tac.BinBitAnd:
		return wrap(a & b), true
	case tac.BinBitOr:
		return wrap(a | b), true
	case tac.BinBitXor:
		return wrap(a ^ b), true
	case tac.BinBitShiftLeft:
		return wrap(a << uint(b)), true
	case tac.BinBitShiftRight, tac.BinBitShrArithmetic:
		return wrap(a >> uint(b)), true
	case tac.BinEqual:
		return boolConst(a == b), true
	case tac.BinNotEqual:
		return boolConst(a != b), true
	case tac.BinLessThan:
		return boolConst(a < b), true
	case tac.BinLessOrEqual:
		return boolConst(a <= b), true
	case tac.BinGreaterThan:
		return boolConst(a > b), true
	case tac.BinGreaterOrEqual:
		return boolConst(a >= b), true
	}
	return nil, false
}

func foldDouble(op tac.BinaryOp, a, b float64) (fetype.Const, bool) {
	switch op {
	case tac.BinAdd:
		return fetype.ConstDouble{Value: a + b}, true
	case tac.BinSub:
		return fetype.ConstDouble{Value: a - b}, true
	case tac.BinMult:
		return fetype.ConstDouble{Value: a * b}, true
	case tac.BinDivide:
		return fetype.ConstDouble{Value: a / b}, true
	case tac.BinEqual:
		return boolConst(a == b), true
	case tac.BinNotEqual:
		return boolConst(a != b), true
	case tac.BinLessThan:
		return boolConst(a < b), true
	case tac.BinLessOrEqual:
		return boolConst(a <= b), true
	case tac.BinGreaterThan:
		return boolConst(a > b), true
	case tac.BinGreaterOrEqual:
		return boolConst(a >= b), true
	}
	return nil, false
}
