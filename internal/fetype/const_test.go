package fetype

import "testing"

func TestBits_IntegerWidths(t *testing.T) {
	tests := []struct {
		name string
		c    Const
		want uint64
	}{
		{"int positive", ConstInt{Value: 42}, 42},
		{"int negative", ConstInt{Value: -1}, 0xffffffff},
		{"long negative", ConstLong{Value: -1}, 0xffffffffffffffff},
		{"uint", ConstUInt{Value: 7}, 7},
		{"ulong", ConstULong{Value: 0xdeadbeef}, 0xdeadbeef},
		{"char negative", ConstChar{Value: -1}, 0xff},
		{"uchar", ConstUChar{Value: 200}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bits(tt.c); got != tt.want {
				t.Errorf("Bits(%#v) = %#x, want %#x", tt.c, got, tt.want)
			}
		})
	}
}

func TestBits_Double(t *testing.T) {
	c := ConstDouble{Value: 1.0}
	got := Bits(c)
	want := uint64(0x3ff0000000000000)
	if got != want {
		t.Errorf("Bits(ConstDouble{1.0}) = %#x, want %#x", got, want)
	}
}

func TestConst_WidthPredicates(t *testing.T) {
	tests := []struct {
		name              string
		c                 Const
		is1Byte, is4Byte  bool
		isDouble, signed  bool
	}{
		{"int", ConstInt{}, false, true, false, true},
		{"uint", ConstUInt{}, false, true, false, false},
		{"long", ConstLong{}, false, false, false, true},
		{"ulong", ConstULong{}, false, false, false, false},
		{"char", ConstChar{}, true, false, false, true},
		{"uchar", ConstUChar{}, true, false, false, false},
		{"double", ConstDouble{}, false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Is1Byte(); got != tt.is1Byte {
				t.Errorf("Is1Byte() = %v, want %v", got, tt.is1Byte)
			}
			if got := tt.c.Is4Byte(); got != tt.is4Byte {
				t.Errorf("Is4Byte() = %v, want %v", got, tt.is4Byte)
			}
			if got := tt.c.IsDouble(); got != tt.isDouble {
				t.Errorf("IsDouble() = %v, want %v", got, tt.isDouble)
			}
			if got := tt.c.IsSigned(); got != tt.signed {
				t.Errorf("IsSigned() = %v, want %v", got, tt.signed)
			}
		})
	}
}
