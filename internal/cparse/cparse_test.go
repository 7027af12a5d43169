package cparse

import (
	"testing"

	"github.com/wheelcc/wheelcc/internal/fetype"
)

func TestHostTarget_PinnedToAmd64Linux(t *testing.T) {
	if hostOS() != "linux" {
		t.Errorf("hostOS() = %q, want linux", hostOS())
	}
	if hostArch() != "amd64" {
		t.Errorf("hostArch() = %q, want amd64", hostArch())
	}
}

func TestConstFromInt64_PicksWidthFromType(t *testing.T) {
	charT := fetype.Scalar{Kind: fetype.KindChar}
	intT := fetype.Scalar{Kind: fetype.KindInt}
	longT := fetype.Scalar{Kind: fetype.KindLong}

	if c, ok := constFromInt64(-1, charT).(fetype.ConstChar); !ok || c.Value != -1 {
		t.Errorf("constFromInt64(-1, char) = %#v, want ConstChar{-1}", c)
	}
	if c, ok := constFromInt64(100, intT).(fetype.ConstInt); !ok || c.Value != 100 {
		t.Errorf("constFromInt64(100, int) = %#v, want ConstInt{100}", c)
	}
	if c, ok := constFromInt64(1000, longT).(fetype.ConstLong); !ok || c.Value != 1000 {
		t.Errorf("constFromInt64(1000, long) = %#v, want ConstLong{1000}", c)
	}
}

func TestConstFromUint64_PicksWidthFromType(t *testing.T) {
	ucharT := fetype.Scalar{Kind: fetype.KindUChar}
	uintT := fetype.Scalar{Kind: fetype.KindUInt}
	ulongT := fetype.Scalar{Kind: fetype.KindULong}

	if c, ok := constFromUint64(255, ucharT).(fetype.ConstUChar); !ok || c.Value != 255 {
		t.Errorf("constFromUint64(255, uchar) = %#v, want ConstUChar{255}", c)
	}
	if c, ok := constFromUint64(4000000000, uintT).(fetype.ConstUInt); !ok || c.Value != 4000000000 {
		t.Errorf("constFromUint64(4000000000, uint) = %#v, want ConstUInt{4000000000}", c)
	}
	if c, ok := constFromUint64(1<<40, ulongT).(fetype.ConstULong); !ok || c.Value != 1<<40 {
		t.Errorf("constFromUint64(1<<40, ulong) = %#v, want ConstULong", c)
	}
}
