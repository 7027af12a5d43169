package asmgen

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

// copyStrides walks size bytes from high stride to low (Quad, then Long,
// then Byte), invoking emitMov once per stride with the per-stride
// AssemblyType and running offset. Every struct/array byte-copy sequence
// follows this same stride pattern.
func copyStrides(size int64, emitMov func(t asmtype.AssemblyType, offset int64)) {
	var offset int64
	for size > 0 {
		switch {
		case size >= 8:
			emitMov(asmtype.QuadWord{}, offset)
			size -= 8
			offset += 8
		case size >= 4:
			emitMov(asmtype.LongWord{}, offset)
			size -= 4
			offset += 4
		default:
			emitMov(asmtype.Byte{}, offset)
			size--
			offset++
		}
	}
}

func (g *Generator) emitMov(t asmtype.AssemblyType, src, dst asm.Operand) {
	g.emit(&asm.Mov{Type: t, Src: src, Dst: dst})
}
