// Package common holds packet types shared across protocol states -
// currently just the handshake, the single packet every connection starts
// with regardless of where it's headed.
package common

import (
	"io"

	"github.com/seiftnesse/mc-router/protocol/minecraft"
)

// NextState is the handshake's declared intent for the rest of the
// connection.
type NextState int32

const (
	NextStateStatus   NextState = 1
	NextStateLogin    NextState = 2
	NextStateTransfer NextState = 3 // 1.20.5+, not routed - see router.ErrUnsupportedNextState
)

// Handshake is the first packet on any connection (packet ID 0x00 in the
// Handshaking state). ServerAddress carries whatever hostname the client
// was told to connect to, including any Forge marker suffix - see the forge
// package for splitting it back apart.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (p *Handshake) PacketID() minecraft.PacketID { return 0x00 }

func (p *Handshake) Encode(w io.Writer) error {
	if err := minecraft.WriteVarInt(w, p.ProtocolVersion); err != nil {
		return err
	}
	if err := minecraft.WriteString(w, p.ServerAddress, 255); err != nil {
		return err
	}
	if err := minecraft.WriteUShort(w, p.ServerPort); err != nil {
		return err
	}
	return minecraft.WriteVarInt(w, int32(p.NextState))
}

func (p *Handshake) Decode(r io.Reader) error {
	var err error
	if p.ProtocolVersion, err = minecraft.ReadVarInt(r); err != nil {
		return err
	}
	if p.ServerAddress, err = minecraft.ReadString(r, 255); err != nil {
		return err
	}
	if p.ServerPort, err = minecraft.ReadUShort(r); err != nil {
		return err
	}
	next, err := minecraft.ReadVarInt(r)
	if err != nil {
		return err
	}
	p.NextState = NextState(next)
	return nil
}
