package fetype

import "github.com/wheelcc/wheelcc/internal/ident"

// Member describes one named field of a struct or union typedef.
type Member struct {
	Offset int64
	Type   Type
}

// StructTypedef is the per-tag layout recorded by the front end:
// alignment, whole-object size, and an ordered member list (insertion
// order is load-bearing: the classifier stops scanning a struct's members
// at the first one that starts past the eight-byte window it is checking).
type StructTypedef struct {
	Alignment   int64
	Size        int64
	MemberNames []ident.ID
	Members     map[ident.ID]Member
}

// MemberAt returns the i-th member in declaration order.
func (s *StructTypedef) MemberAt(i int) Member {
	return s.Members[s.MemberNames[i]]
}

// Back returns the last-declared member.
func (s *StructTypedef) Back() Member {
	return s.MemberAt(len(s.MemberNames) - 1)
}

// Table maps struct/union tags to their typedef, mirroring
// FrontEndSymbols.struct_typedef_table.
type Table map[ident.ID]*StructTypedef

// Alignment returns the ABI alignment of t: 1/4/8 for scalars/pointers, the
// element alignment for arrays (16 when the array is >=16 bytes at
// top-level, to match System V's requirement that large aggregates that
// open a stack frame be 16-byte aligned), and the struct's recorded
// alignment for Structure.
func Alignment(structs Table, t Type, topLevel bool) int64 {
	switch v := t.(type) {
	case Scalar:
		switch v.Kind {
		case KindChar, KindSChar, KindUChar:
			return 1
		case KindInt, KindUInt:
			return 4
		default:
			return 8
		}
	case Pointer:
		return 8
	case Array:
		elemAlign := Alignment(structs, v.Elem, false)
		size := Size(structs, v)
		if topLevel && size >= 16 {
			return 16
		}
		return elemAlign
	case Structure:
		return structs[v.Tag].Alignment
	default:
		return 8
	}
}

// Size returns the whole-object byte size of t.
func Size(structs Table, t Type) int64 {
	switch v := t.(type) {
	case Scalar:
		switch v.Kind {
		case KindChar, KindSChar, KindUChar:
			return 1
		case KindInt, KindUInt:
			return 4
		default:
			return 8
		}
	case Pointer:
		return 8
	case Array:
		return v.Len * Size(structs, v.Elem)
	case Structure:
		return structs[v.Tag].Size
	default:
		return 8
	}
}
