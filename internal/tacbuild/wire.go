package tacbuild

import "encoding/json"

type wireProgram struct {
	Statics   []wireStatic   `json:"statics"`
	Functions []wireFunction `json:"functions"`
}

type wireStatic struct {
	Name   string `json:"name"`
	Global bool   `json:"global"`
	Align  int64  `json:"align"`
}

type wireFunction struct {
	Name         string                     `json:"name"`
	Global       bool                       `json:"global"`
	Params       []string                   `json:"params"`
	Locals       map[string]json.RawMessage `json:"locals"`
	Instructions []wireInstr                `json:"instructions"`
}

// wireInstr is a loosely-typed instruction record: op selects which of the
// remaining fields are meaningful, mirroring how the asm/tac packages keep
// one struct per concrete Instruction variant.
type wireInstr struct {
	Op      string          `json:"op"`
	Src     *wireValue      `json:"src,omitempty"`
	Src1    *wireValue      `json:"src1,omitempty"`
	Src2    *wireValue      `json:"src2,omitempty"`
	Dst     *wireValue      `json:"dst,omitempty"`
	Val     *wireValue      `json:"val,omitempty"`
	Cond    *wireValue      `json:"cond,omitempty"`
	SrcPtr  *wireValue      `json:"srcptr,omitempty"`
	DstPtr  *wireValue      `json:"dstptr,omitempty"`
	Idx     *wireValue      `json:"idx,omitempty"`
	Scale   int64           `json:"scale,omitempty"`
	SrcName string          `json:"srcname,omitempty"`
	DstName string          `json:"dstname,omitempty"`
	Offset  int64           `json:"offset,omitempty"`
	Name    string          `json:"name,omitempty"`
	Target  string          `json:"target,omitempty"`
	Op2     string          `json:"subop,omitempty"` // unary/binary op mnemonic
	FunName string          `json:"fun,omitempty"`
	Args    []wireValue     `json:"args,omitempty"`
}

// wireValue is either {"const": {...}} or {"var": "name"}.
type wireValue struct {
	Const *wireConst `json:"const,omitempty"`
	Var   string     `json:"var,omitempty"`
}

// wireConst is {"kind": "int|long|uint|ulong|char|uchar|double", "value": N}.
type wireConst struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}
