package minecraft

import (
	"bytes"
	"testing"
)

func TestWritePacketThenReadPacketRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, 5); err != nil { // frame length placeholder, overwritten below
		t.Fatal(err)
	}
	buf.Reset()

	body := new(bytes.Buffer)
	if err := WriteVarInt(body, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := WriteLong(body, 12345); err != nil {
		t.Fatal(err)
	}
	if err := WriteVarInt(&buf, int32(body.Len())); err != nil {
		t.Fatal(err)
	}
	buf.Write(body.Bytes())

	id, data, err := ReadPacketRaw(&buf)
	if err != nil {
		t.Fatalf("ReadPacketRaw: %v", err)
	}
	if id != 0x01 {
		t.Fatalf("got id %d, want 1", id)
	}
	payload, err := ReadLong(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if payload != 12345 {
		t.Fatalf("got payload %d, want 12345", payload)
	}
}

func TestReadPacketRawFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, MaxFrameLength+1); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadPacketRaw(&buf); err == nil {
		t.Fatal("expected error for an over-large frame length")
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "play.example.com", 255); err != nil {
		t.Fatal(err)
	}
	got, err := ReadString(&buf, 255)
	if err != nil {
		t.Fatal(err)
	}
	if got != "play.example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "0123456789", 5); err == nil {
		t.Fatal("expected error for an over-long string")
	}
}

func TestBoolLowBitSemantics(t *testing.T) {
	var buf bytes.Buffer
	// Non-canonical "true" byte - only the low bit matters per protocol.
	if err := WriteUByte(&buf, 0x03); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBool(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected true for an odd byte value")
	}
}
