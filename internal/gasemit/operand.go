package gasemit

import (
	"fmt"
	"strconv"

	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

// width maps a backend assembly type to the byte/long/quad register-name
// index gas expects; BackendDouble and ByteArray operands are always
// addressed through a quad-width base register even though the value they
// hold isn't itself 8 bytes.
func width(t asmtype.AssemblyType) int {
	switch t.(type) {
	case asmtype.Byte:
		return widthByte
	case asmtype.LongWord:
		return widthLong
	default:
		return widthQuad
	}
}

// suffix returns the one-letter gas mnemonic suffix for an instruction's
// operand width: b/l/q for integer widths, sd for a scalar double.
func suffix(t asmtype.AssemblyType) string {
	switch t.(type) {
	case asmtype.Byte:
		return "b"
	case asmtype.LongWord:
		return "l"
	case asmtype.BackendDouble:
		return "sd"
	default:
		return "q"
	}
}

func (e *emitter) operand(op asm.Operand, t asmtype.AssemblyType) string {
	switch v := op.(type) {
	case asm.Imm:
		return e.imm(v)
	case asm.Register:
		return regName(v.Reg, width(t))
	case asm.Memory:
		return e.memory(v)
	case asm.Data:
		return e.data(v)
	case asm.Indexed:
		return e.indexed(v)
	case asm.Pseudo:
		// Reaching gasemit means stackfix was skipped; render the raw name
		// so a malformed pipeline is at least visible in the output.
		return "%PSEUDO_" + e.name(v.Name)
	case asm.PseudoMem:
		return "%PSEUDOMEM_" + e.name(v.Name)
	default:
		return fmt.Sprintf("<?operand %T>", op)
	}
}

func (e *emitter) imm(v asm.Imm) string {
	if v.IsNeg {
		return "$" + strconv.FormatInt(int64(v.Value), 10)
	}
	return "$" + strconv.FormatUint(v.Value, 10)
}

func (e *emitter) memory(m asm.Memory) string {
	base := regName(m.Base, widthQuad)
	if m.Offset == 0 {
		return "(" + base + ")"
	}
	return strconv.FormatInt(m.Offset, 10) + "(" + base + ")"
}

func (e *emitter) data(d asm.Data) string {
	label := e.name(d.Name)
	if d.Offset == 0 {
		return label + "(%rip)"
	}
	return fmt.Sprintf("%s+%d(%%rip)", label, d.Offset)
}

func (e *emitter) indexed(x asm.Indexed) string {
	return fmt.Sprintf("(%s,%s,%d)", regName(x.Base, widthQuad), regName(x.RegIndex, widthQuad), x.Scale)
}

func condSuffix(c asm.CondCode) string {
	names := [...]string{"e", "ne", "g", "ge", "l", "le", "a", "ae", "b", "be", "p"}
	if int(c) < 0 || int(c) >= len(names) {
		return "?"
	}
	return names[c]
}
