package minecraft

import (
	"bytes"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 2, 127, 128, 255, 25565, -1, -2147483648, 2147483647}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		if buf.Len() != VarIntSize(v) {
			t.Fatalf("VarIntSize(%d) = %d, wrote %d bytes", v, VarIntSize(v), buf.Len())
		}
		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	// Values pulled straight from wiki.vg's VarInt test table.
	cases := map[int32][]byte{
		0:          {0x00},
		1:          {0x01},
		2:          {0x02},
		127:        {0x7f},
		128:        {0x80, 0x01},
		255:        {0xff, 0x01},
		2097151:    {0xff, 0xff, 0x7f},
		2147483647: {0xff, 0xff, 0xff, 0xff, 0x07},
		-1:         {0xff, 0xff, 0xff, 0xff, 0x0f},
		-2147483648: {0x80, 0x80, 0x80, 0x80, 0x08},
	}
	for v, want := range cases {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Fatalf("encode %d: got % x, want % x", v, buf.Bytes(), want)
		}
	}
}

func TestReadVarIntTooLong(t *testing.T) {
	// Five bytes with continuation bits set on all of them - a VarInt that
	// never terminates within int32 range.
	buf := bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	if _, err := ReadVarInt(buf); err != ErrVarIntTooLong {
		t.Fatalf("expected ErrVarIntTooLong, got %v", err)
	}
}

func TestReadVarIntTruncated(t *testing.T) {
	buf := bytes.NewReader([]byte{0x80})
	if _, err := ReadVarInt(buf); err == nil {
		t.Fatal("expected an error reading a truncated varint")
	}
}
