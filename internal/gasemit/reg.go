package gasemit

import "github.com/wheelcc/wheelcc/internal/asm"

// regNames maps each physical register to its byte/long/quad AT&T names.
// SSE registers keep one spelling regardless of operand width.
var regNames = map[asm.Reg][3]string{
	asm.Ax:  {"al", "eax", "rax"},
	asm.Bx:  {"bl", "ebx", "rbx"},
	asm.Cx:  {"cl", "ecx", "rcx"},
	asm.Dx:  {"dl", "edx", "rdx"},
	asm.Di:  {"dil", "edi", "rdi"},
	asm.Si:  {"sil", "esi", "rsi"},
	asm.R8:  {"r8b", "r8d", "r8"},
	asm.R9:  {"r9b", "r9d", "r9"},
	asm.R10: {"r10b", "r10d", "r10"},
	asm.R11: {"r11b", "r11d", "r11"},
	asm.R12: {"r12b", "r12d", "r12"},
	asm.R13: {"r13b", "r13d", "r13"},
	asm.R14: {"r14b", "r14d", "r14"},
	asm.R15: {"r15b", "r15d", "r15"},
	asm.Sp:  {"spl", "esp", "rsp"},
	asm.Bp:  {"bpl", "ebp", "rbp"},
}

const (
	widthByte = iota
	widthLong
	widthQuad
)

func regName(r asm.Reg, width int) string {
	if r >= asm.Xmm0 && r <= asm.Xmm15 {
		return "%xmm" + xmmSuffix(r)
	}
	names, ok := regNames[r]
	if !ok {
		return "%" + r.String()
	}
	return "%" + names[width]
}

func xmmSuffix(r asm.Reg) string {
	suffixes := [...]string{
		"0", "1", "2", "3", "4", "5", "6", "7",
		"8", "9", "10", "11", "12", "13", "14", "15",
	}
	return suffixes[int(r-asm.Xmm0)]
}
