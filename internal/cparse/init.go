package cparse

import (
	"modernc.org/cc/v4"

	"github.com/wheelcc/wheelcc/internal/fetype"
)

// valuer is satisfied by the cc/v4 expression nodes that carry a
// constant-folded value once semantic checking has run.
type valuer interface {
	Value() cc.Value
}

// staticInitsFromInitializer renders a declarator's initializer to the
// StaticInit list the backend expects. Only scalar constant expressions and
// string literals are evaluated; anything cc/v4 didn't fold to a constant
// (a reference to another global, a runtime computation) degrades to
// InitZero rather than failing the parse — initializing a global from a
// non-constant expression isn't legal C at file scope anyway, so this path
// only matters for initializer shapes this front end doesn't model yet
// (nested brace-init of an aggregate).
func (p *parser) staticInitsFromInitializer(init *cc.Initializer, t fetype.Type) []fetype.StaticInit {
	size := fetype.Size(p.fe.StructTypedefs, t)
	if init == nil {
		return []fetype.StaticInit{fetype.InitZero{Bytes: size}}
	}
	if init.Case != cc.InitializerExpr || init.AssignmentExpression == nil {
		// Brace-enclosed aggregate initializer: not modeled, zero-fill.
		return []fetype.StaticInit{fetype.InitZero{Bytes: size}}
	}
	return []fetype.StaticInit{p.staticInitFromExpr(init.AssignmentExpression, t, size)}
}

func (p *parser) staticInitFromExpr(expr any, t fetype.Type, size int64) fetype.StaticInit {
	v, ok := expr.(valuer)
	if !ok {
		return fetype.InitZero{Bytes: size}
	}
	val := v.Value()

	switch cv := val.(type) {
	case cc.Int64Value:
		return fetype.InitConst{Value: constFromInt64(int64(cv), t)}
	case cc.Uint64Value:
		return fetype.InitConst{Value: constFromUint64(uint64(cv), t)}
	case cc.Float64Value:
		return fetype.InitConst{Value: fetype.ConstDouble{Value: float64(cv)}}
	case cc.StringValue:
		literal := cc.StringID(cv).String()
		if _, isArray := t.(fetype.Array); isArray {
			return fetype.InitString{ID: p.idents.Intern(literal), IsNullTerm: true, Literal: literal}
		}
		label := p.idents.NewLabel("str")
		p.fe.StringConstTable[label] = literal
		return fetype.InitPointer{Name: label}
	default:
		return fetype.InitZero{Bytes: size}
	}
}

func constFromInt64(v int64, t fetype.Type) fetype.Const {
	switch {
	case fetype.Is1Byte(t):
		return fetype.ConstChar{Value: int8(v)}
	case fetype.Is4Byte(t):
		return fetype.ConstInt{Value: int32(v)}
	default:
		return fetype.ConstLong{Value: v}
	}
}

func constFromUint64(v uint64, t fetype.Type) fetype.Const {
	switch {
	case fetype.Is1Byte(t):
		return fetype.ConstUChar{Value: uint8(v)}
	case fetype.Is4Byte(t):
		return fetype.ConstUInt{Value: uint32(v)}
	default:
		return fetype.ConstULong{Value: v}
	}
}
