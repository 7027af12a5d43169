// Package classify implements the System V struct/union ABI classifier:
// for each aggregate tag, which of its eight-byte slots are passed
// in an integer register, an SSE register, or memory.
package classify

import (
	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

// Class is the per-eight-byte ABI class.
type Class int

const (
	Integer Class = iota
	Sse
	Memory
)

// Struct8Bytes is the per-tag classification result. NumEightbytes > 2
// means "passed entirely in memory (stack)"; only Classes[0]/Classes[1] are
// meaningful in that case since the ABI routes >16-byte aggregates to
// memory wholesale.
type Struct8Bytes struct {
	NumEightbytes int
	Classes       [2]Class
}

// Cache memoizes classification results per struct tag for the lifetime of
// a generation context (write-once per tag).
type Cache struct {
	structs fetype.Table
	results map[ident.ID]Struct8Bytes
}

// NewCache returns a classifier bound to the given struct typedef table.
func NewCache(structs fetype.Table) *Cache {
	return &Cache{structs: structs, results: make(map[ident.ID]Struct8Bytes)}
}

// Classify returns (memoized) the classification of the struct/union named
// by tag.
func (c *Cache) Classify(tag ident.ID) Struct8Bytes {
	if r, ok := c.results[tag]; ok {
		return r
	}
	def := c.structs[tag]
	var result Struct8Bytes
	switch {
	case def.Size > 16:
		result = Struct8Bytes{
			NumEightbytes: int((def.Size + 7) / 8),
			Classes:       [2]Class{Memory, Memory},
		}
	case def.Size <= 8:
		result = Struct8Bytes{NumEightbytes: 1, Classes: [2]Class{c.classifySlot(def, 0, 8), Memory}}
	default:
		result = Struct8Bytes{
			NumEightbytes: 2,
			Classes:       [2]Class{c.classifySlot(def, 0, 8), c.classifySlot(def, 8, def.Size-8)},
		}
	}
	c.results[tag] = result
	return result
}

// classifySlot decides Integer-vs-Sse for one eight-byte window
// [lo, lo+width) of def: walk every member that overlaps the window
// (all members for a union, everything for a struct since a plain C struct
// member only ever overlaps one window at a given offset) and look for a
// contributing non-double leaf.
func (c *Cache) classifySlot(def *fetype.StructTypedef, lo, width int64) Class {
	hi := lo + width
	for _, name := range def.MemberNames {
		m := def.Members[name]
		memberSize := memberSizeOf(c.structs, m.Type)
		if m.Offset >= hi || m.Offset+memberSize <= lo {
			// In a struct, members are laid out in increasing offset
			// order: once one starts past the window, nothing later can
			// overlap it either. A union's members all start at offset 0,
			// which never lies past a window, so every one is checked.
			if m.Offset >= hi {
				break
			}
			continue
		}
		if c.memberIsIntegerLike(m.Type) {
			return Integer
		}
	}
	return Sse
}

func memberSizeOf(structs fetype.Table, t fetype.Type) int64 {
	return fetype.Size(structs, t)
}

// memberIsIntegerLike reports whether t contributes an Integer-classed leaf:
// any non-double scalar/pointer, or (recursively) a nested struct whose own
// first classified slot is Integer.
func (c *Cache) memberIsIntegerLike(t fetype.Type) bool {
	for {
		if arr, ok := t.(fetype.Array); ok {
			t = arr.Elem
			continue
		}
		break
	}
	switch v := t.(type) {
	case fetype.Structure:
		sub := c.Classify(v.Tag)
		return sub.Classes[0] == Integer
	case fetype.Scalar:
		return v.Kind != fetype.KindDouble
	default:
		// Pointer and anything else scalar-like is integer-classed.
		return true
	}
}

// AsmType8b returns the eight-byte assembly type at byte offset within tag's
// struct: QuadWord if the remaining size is >= 8, LongWord if exactly 4,
// Byte if exactly 1, else a ByteArray covering the remainder (triggers the
// shift-and-OR pack/unpack sequences in the function-call and return lowering).
func AsmType8b(structs fetype.Table, tag ident.ID, offset int64) asmtype.AssemblyType {
	def := structs[tag]
	remaining := def.Size - offset
	switch {
	case remaining >= 8:
		return asmtype.QuadWord{}
	case remaining == 4:
		return asmtype.LongWord{}
	case remaining == 1:
		return asmtype.Byte{}
	default:
		return asmtype.ByteArray{SizeBytes: remaining, Align: 8}
	}
}
