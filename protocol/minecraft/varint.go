// Package minecraft implements the wire primitives of the Minecraft Java
// Edition protocol: variable-length integers, the length-prefixed packet
// frame, and the fixed-width field encodings packets are built from.
package minecraft

import (
	"errors"
	"io"
)

const (
	// MaxVarIntLength is the largest number of bytes a VarInt can occupy.
	// Each byte carries 7 data bits, so an int32 never needs more than 5.
	MaxVarIntLength = 5
	// MaxVarLongLength is the largest number of bytes a VarLong can occupy.
	MaxVarLongLength = 10
)

// ErrVarIntTooLong is returned when a VarInt or VarLong exceeds its maximum
// encoded length without terminating. A well-behaved client never sends one;
// this only fires against a corrupt or hostile peer.
var ErrVarIntTooLong = errors.New("minecraft: varint too long")

// ReadVarInt reads a VarInt-encoded int32 from r.
func ReadVarInt(r io.Reader) (int32, error) {
	var value int32
	var position uint
	var buf [1]byte

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}

		value |= int32(buf[0]&0x7F) << position
		if buf[0]&0x80 == 0 {
			break
		}

		position += 7
		if position >= 32 {
			return 0, ErrVarIntTooLong
		}
	}

	return value, nil
}

// WriteVarInt encodes value as a VarInt and writes it to w.
func WriteVarInt(w io.Writer, value int32) error {
	var buf [MaxVarIntLength]byte
	n := 0
	uval := uint32(value)
	for {
		b := byte(uval & 0x7F)
		uval >>= 7
		if uval != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if uval == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// VarIntSize returns the number of bytes value would occupy when encoded.
func VarIntSize(value int32) int {
	uval := uint32(value)
	size := 1
	for uval >= 0x80 {
		uval >>= 7
		size++
	}
	return size
}

// ReadVarLong reads a VarInt-encoded int64 from r.
func ReadVarLong(r io.Reader) (int64, error) {
	var value int64
	var position uint
	var buf [1]byte

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}

		value |= int64(buf[0]&0x7F) << position
		if buf[0]&0x80 == 0 {
			break
		}

		position += 7
		if position >= 64 {
			return 0, ErrVarIntTooLong
		}
	}

	return value, nil
}

// WriteVarLong encodes value as a VarLong and writes it to w.
func WriteVarLong(w io.Writer, value int64) error {
	var buf [MaxVarLongLength]byte
	n := 0
	uval := uint64(value)
	for {
		b := byte(uval & 0x7F)
		uval >>= 7
		if uval != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if uval == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// VarLongSize returns the number of bytes value would occupy when encoded.
func VarLongSize(value int64) int {
	uval := uint64(value)
	size := 1
	for uval >= 0x80 {
		uval >>= 7
		size++
	}
	return size
}
