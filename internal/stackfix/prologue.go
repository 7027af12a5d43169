package stackfix

import (
	"github.com/wheelcc/wheelcc/internal/asm"
	"github.com/wheelcc/wheelcc/internal/asmtype"
)

// withPrologueEpilogue prepends the standard frame-pointer prologue and
// replaces every Ret with the matching epilogue plus Ret, so a function
// with multiple TAC-level return points tears its frame down at each one.
func withPrologueEpilogue(body []asm.Instruction, frameSize int64) []asm.Instruction {
	out := make([]asm.Instruction, 0, len(body)+4)
	out = append(out,
		&asm.Push{Src: asm.Register{Reg: asm.Bp}},
		&asm.Mov{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Sp}, Dst: asm.Register{Reg: asm.Bp}},
	)
	if frameSize > 0 {
		out = append(out, &asm.BinaryInstr{
			Op:   asm.OpSub,
			Type: asmtype.QuadWord{},
			Src:  asm.ImmFromInt64(frameSize, false, true),
			Dst:  asm.Register{Reg: asm.Sp},
		})
	}

	for _, instr := range body {
		if _, ok := instr.(*asm.Ret); !ok {
			out = append(out, instr)
			continue
		}
		out = append(out,
			&asm.Mov{Type: asmtype.QuadWord{}, Src: asm.Register{Reg: asm.Bp}, Dst: asm.Register{Reg: asm.Sp}},
			&asm.Pop{Reg: asm.Bp},
			&asm.Ret{},
		)
	}
	return out
}
