package minecraft

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// PacketID identifies a packet within whatever state it belongs to. IDs are
// only unique per (state, direction) pair, not globally - callers are
// expected to already know which state a connection is in.
type PacketID int32

// MaxFrameLength caps the length prefix of an incoming frame. 2^21-1 is the
// largest length a 3-byte VarInt can express, which is the effective limit
// vanilla clients observe; anything past it is either corrupt or hostile.
const MaxFrameLength = 2097151

// Packet is implemented by every concrete packet type the router reads or
// writes. Decode/Encode only ever see the packet body - the length prefix
// and packet ID are handled by ReadPacket/WritePacket.
type Packet interface {
	PacketID() PacketID
	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

// ReadPacketRaw reads one length-prefixed frame from r and splits it into
// its packet ID and remaining body. It performs no decoding beyond that -
// the caller picks a concrete Packet type once it knows the ID.
func ReadPacketRaw(r io.Reader) (PacketID, []byte, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return 0, nil, fmt.Errorf("read frame length: %w", err)
	}
	if length <= 0 || length > MaxFrameLength {
		return 0, nil, fmt.Errorf("frame length out of range: %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, fmt.Errorf("read frame body: %w", err)
	}

	buf := bytes.NewReader(body)
	id, err := ReadVarInt(buf)
	if err != nil {
		return 0, nil, fmt.Errorf("read packet id: %w", err)
	}

	remaining := make([]byte, buf.Len())
	_, _ = buf.Read(remaining)
	return PacketID(id), remaining, nil
}

// WrongPacketIDError is returned by ReadPacket when the frame's packet ID
// doesn't match the target packet's expected ID.
type WrongPacketIDError struct {
	Want, Got PacketID
}

func (e *WrongPacketIDError) Error() string {
	return fmt.Sprintf("minecraft: unexpected packet id: got 0x%02X, want 0x%02X", e.Got, e.Want)
}

// ReadPacket reads one frame from r and decodes it into packet. It returns
// *WrongPacketIDError if the frame's ID doesn't match packet.PacketID().
func ReadPacket(r io.Reader, packet Packet) error {
	id, data, err := ReadPacketRaw(r)
	if err != nil {
		return err
	}
	if id != packet.PacketID() {
		return &WrongPacketIDError{Want: packet.PacketID(), Got: id}
	}
	if err := packet.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("decode packet 0x%02X: %w", id, err)
	}
	return nil
}

// WritePacket encodes packet and writes it to w as a single length-prefixed
// frame.
func WritePacket(w io.Writer, packet Packet) error {
	var body bytes.Buffer
	if err := WriteVarInt(&body, int32(packet.PacketID())); err != nil {
		return fmt.Errorf("write packet id: %w", err)
	}
	if err := packet.Encode(&body); err != nil {
		return fmt.Errorf("encode packet 0x%02X: %w", packet.PacketID(), err)
	}

	if err := WriteVarInt(w, int32(body.Len())); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write frame body: %w", err)
	}
	return nil
}

// ReadString reads a VarInt-length-prefixed UTF-8 string, rejecting any
// encoded length over maxLength bytes.
func ReadString(r io.Reader, maxLength int) (string, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if length < 0 || int(length) > maxLength {
		return "", fmt.Errorf("string length out of range: %d (max %d)", length, maxLength)
	}
	if length == 0 {
		return "", nil
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteString writes s as a VarInt-length-prefixed UTF-8 string.
func WriteString(w io.Writer, s string, maxLength int) error {
	if len(s) > maxLength {
		return fmt.Errorf("string too long: %d > %d", len(s), maxLength)
	}
	if err := WriteVarInt(w, int32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// ReadBool reads a single-byte boolean. Per the protocol, any odd value is
// true - only the low bit is significant.
func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadUByte(r)
	if err != nil {
		return false, err
	}
	return b&1 == 1, nil
}

// WriteBool writes a single-byte boolean.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteUByte(w, 1)
	}
	return WriteUByte(w, 0)
}

// ReadUByte reads an unsigned byte.
func ReadUByte(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteUByte writes an unsigned byte.
func WriteUByte(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// ReadUShort reads a big-endian uint16, used for the handshake's server port.
func ReadUShort(r io.Reader) (uint16, error) {
	var v uint16
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

// WriteUShort writes a big-endian uint16.
func WriteUShort(w io.Writer, v uint16) error {
	return binary.Write(w, binary.BigEndian, v)
}

// ReadLong reads a big-endian int64, used by status ping/pong payloads.
func ReadLong(r io.Reader) (int64, error) {
	var v int64
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

// WriteLong writes a big-endian int64.
func WriteLong(w io.Writer, v int64) error {
	return binary.Write(w, binary.BigEndian, v)
}

// ReadDouble reads a big-endian IEEE 754 double.
func ReadDouble(r io.Reader) (float64, error) {
	var bits uint64
	if err := binary.Read(r, binary.BigEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// WriteDouble writes a big-endian IEEE 754 double.
func WriteDouble(w io.Writer, v float64) error {
	return binary.Write(w, binary.BigEndian, math.Float64bits(v))
}

// ReadUUID reads a raw 16-byte UUID.
func ReadUUID(r io.Reader) ([16]byte, error) {
	var id [16]byte
	_, err := io.ReadFull(r, id[:])
	return id, err
}

// WriteUUID writes a raw 16-byte UUID.
func WriteUUID(w io.Writer, id [16]byte) error {
	_, err := w.Write(id[:])
	return err
}

// ReadByteArray reads n raw bytes verbatim - used for login-signature
// key/signature blobs whose length is carried out-of-band.
func ReadByteArray(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
