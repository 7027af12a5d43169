package fetype

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/ident"
)

func TestSize_Scalars(t *testing.T) {
	tests := []struct {
		kind Kind
		want int64
	}{
		{KindChar, 1},
		{KindUChar, 1},
		{KindInt, 4},
		{KindUInt, 4},
		{KindLong, 8},
		{KindDouble, 8},
	}
	for _, tt := range tests {
		if got := Size(nil, Scalar{Kind: tt.kind}); got != tt.want {
			t.Errorf("Size(Scalar{%v}) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestSize_Array(t *testing.T) {
	arr := Array{Elem: Scalar{Kind: KindInt}, Len: 5}
	if got := Size(nil, arr); got != 20 {
		t.Errorf("Size(int[5]) = %d, want 20", got)
	}
}

func TestSize_Structure(t *testing.T) {
	tag := ident.ID(1)
	structs := Table{tag: {Alignment: 8, Size: 16}}
	if got := Size(structs, Structure{Tag: tag}); got != 16 {
		t.Errorf("Size(struct) = %d, want 16", got)
	}
	if got := Alignment(structs, Structure{Tag: tag}, true); got != 8 {
		t.Errorf("Alignment(struct) = %d, want 8", got)
	}
}

func TestAlignment_LargeTopLevelArrayIs16(t *testing.T) {
	arr := Array{Elem: Scalar{Kind: KindChar}, Len: 32}
	if got := Alignment(nil, arr, true); got != 16 {
		t.Errorf("Alignment(char[32], topLevel) = %d, want 16", got)
	}
	if got := Alignment(nil, arr, false); got != 1 {
		t.Errorf("Alignment(char[32], non-top-level) = %d, want 1 (elem alignment)", got)
	}
}

func TestAlignment_SmallArrayUsesElemAlign(t *testing.T) {
	arr := Array{Elem: Scalar{Kind: KindInt}, Len: 2}
	if got := Alignment(nil, arr, true); got != 4 {
		t.Errorf("Alignment(int[2], topLevel) = %d, want 4", got)
	}
}

func TestStructTypedef_MemberOrder(t *testing.T) {
	a, b := ident.ID(10), ident.ID(11)
	st := &StructTypedef{
		Alignment:   8,
		Size:        16,
		MemberNames: []ident.ID{a, b},
		Members: map[ident.ID]Member{
			a: {Offset: 0, Type: Scalar{Kind: KindInt}},
			b: {Offset: 8, Type: Scalar{Kind: KindDouble}},
		},
	}
	if got := st.MemberAt(0).Offset; got != 0 {
		t.Errorf("MemberAt(0).Offset = %d, want 0", got)
	}
	if got := st.Back().Offset; got != 8 {
		t.Errorf("Back().Offset = %d, want 8", got)
	}
}
