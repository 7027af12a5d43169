package fetype

// Const is the front-end constant sum type: Int, Long, UInt, ULong, Char,
// UChar, Double. It doubles as an immediate value carried by TAC and as a
// static initializer payload.
type Const interface {
	isConst()
	// IsSigned reports whether the constant's type is a signed integer kind.
	IsSigned() bool
	// Is1Byte reports whether the constant occupies one byte (Char/UChar).
	Is1Byte() bool
	// Is4Byte reports whether the constant occupies four bytes (Int/UInt).
	Is4Byte() bool
	// IsDouble reports whether the constant is a floating-point value.
	IsDouble() bool
}

type ConstInt struct{ Value int32 }
type ConstLong struct{ Value int64 }
type ConstUInt struct{ Value uint32 }
type ConstULong struct{ Value uint64 }
type ConstChar struct{ Value int8 }
type ConstUChar struct{ Value uint8 }
type ConstDouble struct{ Value float64 }

func (ConstInt) isConst()    {}
func (ConstLong) isConst()   {}
func (ConstUInt) isConst()   {}
func (ConstULong) isConst()  {}
func (ConstChar) isConst()   {}
func (ConstUChar) isConst()  {}
func (ConstDouble) isConst() {}

func (ConstInt) IsSigned() bool    { return true }
func (ConstLong) IsSigned() bool   { return true }
func (ConstUInt) IsSigned() bool   { return false }
func (ConstULong) IsSigned() bool  { return false }
func (ConstChar) IsSigned() bool   { return true }
func (ConstUChar) IsSigned() bool  { return false }
func (ConstDouble) IsSigned() bool { return false }

func (ConstInt) Is1Byte() bool    { return false }
func (ConstLong) Is1Byte() bool   { return false }
func (ConstUInt) Is1Byte() bool   { return false }
func (ConstULong) Is1Byte() bool  { return false }
func (ConstChar) Is1Byte() bool   { return true }
func (ConstUChar) Is1Byte() bool  { return true }
func (ConstDouble) Is1Byte() bool { return false }

func (ConstInt) Is4Byte() bool    { return true }
func (ConstLong) Is4Byte() bool   { return false }
func (ConstUInt) Is4Byte() bool   { return true }
func (ConstULong) Is4Byte() bool  { return false }
func (ConstChar) Is4Byte() bool   { return false }
func (ConstUChar) Is4Byte() bool  { return false }
func (ConstDouble) Is4Byte() bool { return false }

func (ConstInt) IsDouble() bool    { return false }
func (ConstLong) IsDouble() bool   { return false }
func (ConstUInt) IsDouble() bool   { return false }
func (ConstULong) IsDouble() bool  { return false }
func (ConstChar) IsDouble() bool   { return false }
func (ConstUChar) IsDouble() bool  { return false }
func (ConstDouble) IsDouble() bool { return true }

// Bits reinterprets a constant's value as an unsigned 64-bit pattern the way
// an Imm operand stores it (sign-extension handled by the caller per width).
func Bits(c Const) uint64 {
	switch v := c.(type) {
	case ConstInt:
		return uint64(uint32(v.Value))
	case ConstLong:
		return uint64(v.Value)
	case ConstUInt:
		return uint64(v.Value)
	case ConstULong:
		return v.Value
	case ConstChar:
		return uint64(uint8(v.Value))
	case ConstUChar:
		return uint64(v.Value)
	case ConstDouble:
		return doubleBits(v.Value)
	default:
		return 0
	}
}
