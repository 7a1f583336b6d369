// Package c2s holds packets sent client-to-server.
package c2s

import (
	"io"

	"github.com/seiftnesse/mc-router/protocol/minecraft"
)

// StatusRequest carries no fields - its presence alone asks for the
// server's status (packet ID 0x00 in the Status state).
type StatusRequest struct{}

func (p *StatusRequest) PacketID() minecraft.PacketID { return 0x00 }
func (p *StatusRequest) Encode(w io.Writer) error      { return nil }
func (p *StatusRequest) Decode(r io.Reader) error       { return nil }

// PingRequest is an opaque payload the server must echo back unchanged
// (packet ID 0x01 in the Status state).
type PingRequest struct {
	Payload int64
}

func (p *PingRequest) PacketID() minecraft.PacketID { return 0x01 }

func (p *PingRequest) Encode(w io.Writer) error {
	return minecraft.WriteLong(w, p.Payload)
}

func (p *PingRequest) Decode(r io.Reader) error {
	var err error
	p.Payload, err = minecraft.ReadLong(r)
	return err
}
