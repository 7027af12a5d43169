package classify

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/asmtype"
	"github.com/wheelcc/wheelcc/internal/fetype"
	"github.com/wheelcc/wheelcc/internal/ident"
)

func TestClassify_SmallIntegerStruct(t *testing.T) {
	tag := ident.ID(1)
	a, b := ident.ID(2), ident.ID(3)
	structs := fetype.Table{
		tag: {
			Size:        8,
			MemberNames: []ident.ID{a, b},
			Members: map[ident.ID]fetype.Member{
				a: {Offset: 0, Type: fetype.Scalar{Kind: fetype.KindInt}},
				b: {Offset: 4, Type: fetype.Scalar{Kind: fetype.KindInt}},
			},
		},
	}
	c := NewCache(structs)
	got := c.Classify(tag)
	if got.NumEightbytes != 1 || got.Classes[0] != Integer {
		t.Errorf("Classify(two ints) = %+v, want one Integer eightbyte", got)
	}
}

func TestClassify_AllDoubleStructIsSse(t *testing.T) {
	tag := ident.ID(1)
	a, b := ident.ID(2), ident.ID(3)
	structs := fetype.Table{
		tag: {
			Size:        16,
			MemberNames: []ident.ID{a, b},
			Members: map[ident.ID]fetype.Member{
				a: {Offset: 0, Type: fetype.Scalar{Kind: fetype.KindDouble}},
				b: {Offset: 8, Type: fetype.Scalar{Kind: fetype.KindDouble}},
			},
		},
	}
	c := NewCache(structs)
	got := c.Classify(tag)
	if got.Classes[0] != Sse || got.Classes[1] != Sse {
		t.Errorf("Classify(two doubles) = %+v, want both Sse", got)
	}
}

func TestClassify_MixedEightbyteIsInteger(t *testing.T) {
	tag := ident.ID(1)
	a, b := ident.ID(2), ident.ID(3)
	structs := fetype.Table{
		tag: {
			Size:        16,
			MemberNames: []ident.ID{a, b},
			Members: map[ident.ID]fetype.Member{
				a: {Offset: 0, Type: fetype.Scalar{Kind: fetype.KindLong}},
				b: {Offset: 8, Type: fetype.Scalar{Kind: fetype.KindDouble}},
			},
		},
	}
	c := NewCache(structs)
	got := c.Classify(tag)
	if got.Classes[0] != Integer {
		t.Errorf("Classify first eightbyte = %v, want Integer (has a long)", got.Classes[0])
	}
	if got.Classes[1] != Sse {
		t.Errorf("Classify second eightbyte = %v, want Sse (only a double)", got.Classes[1])
	}
}

func TestClassify_LargerThan16BytesIsMemory(t *testing.T) {
	tag := ident.ID(1)
	a := ident.ID(2)
	structs := fetype.Table{
		tag: {
			Size:        24,
			MemberNames: []ident.ID{a},
			Members: map[ident.ID]fetype.Member{
				a: {Offset: 0, Type: fetype.Array{Elem: fetype.Scalar{Kind: fetype.KindLong}, Len: 3}},
			},
		},
	}
	c := NewCache(structs)
	got := c.Classify(tag)
	if got.NumEightbytes != 3 {
		t.Errorf("NumEightbytes = %d, want 3", got.NumEightbytes)
	}
	if got.Classes[0] != Memory || got.Classes[1] != Memory {
		t.Errorf("Classify(24-byte struct) = %+v, want both Memory", got)
	}
}

func TestClassify_IsMemoized(t *testing.T) {
	tag := ident.ID(1)
	a := ident.ID(2)
	structs := fetype.Table{
		tag: {
			Size:        8,
			MemberNames: []ident.ID{a},
			Members:     map[ident.ID]fetype.Member{a: {Offset: 0, Type: fetype.Scalar{Kind: fetype.KindInt}}},
		},
	}
	c := NewCache(structs)
	first := c.Classify(tag)
	delete(structs, tag)
	second := c.Classify(tag)
	if first != second {
		t.Errorf("second Classify() call recomputed instead of using the cache: %+v vs %+v", first, second)
	}
}

func TestAsmType8b(t *testing.T) {
	tag := ident.ID(1)
	structs := fetype.Table{tag: {Size: 13}}

	tests := []struct {
		offset int64
		want   asmtype.AssemblyType
	}{
		{0, asmtype.QuadWord{}},
		{8, asmtype.ByteArray{SizeBytes: 5, Align: 8}},
	}
	for _, tt := range tests {
		if got := AsmType8b(structs, tag, tt.offset); got != tt.want {
			t.Errorf("AsmType8b(offset=%d) = %#v, want %#v", tt.offset, got, tt.want)
		}
	}
}
