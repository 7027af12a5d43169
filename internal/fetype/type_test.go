package fetype

import "testing"

func TestIsScalarOrPointer(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want bool
	}{
		{"scalar", Scalar{Kind: KindInt}, true},
		{"pointer", Pointer{Referenced: Scalar{Kind: KindChar}}, true},
		{"array", Array{Elem: Scalar{Kind: KindInt}, Len: 3}, false},
		{"structure", Structure{}, false},
	}
	for _, tt := range tests {
		if got := IsScalarOrPointer(tt.t); got != tt.want {
			t.Errorf("%s: IsScalarOrPointer() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsSigned(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindInt, true},
		{KindUInt, false},
		{KindLong, true},
		{KindULong, false},
		{KindChar, true},
		{KindUChar, false},
		{KindDouble, false},
	}
	for _, tt := range tests {
		if got := IsSigned(Scalar{Kind: tt.kind}); got != tt.want {
			t.Errorf("IsSigned(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestIsDouble(t *testing.T) {
	if !IsDouble(Scalar{Kind: KindDouble}) {
		t.Error("IsDouble(double) = false, want true")
	}
	if IsDouble(Scalar{Kind: KindInt}) {
		t.Error("IsDouble(int) = true, want false")
	}
	if IsDouble(Pointer{Referenced: Scalar{Kind: KindDouble}}) {
		t.Error("IsDouble(pointer-to-double) = true, want false")
	}
}
