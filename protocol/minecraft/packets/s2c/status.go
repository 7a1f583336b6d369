// Package s2c holds packets sent server-to-client.
package s2c

import (
	"encoding/json"
	"io"

	"github.com/seiftnesse/mc-router/protocol/minecraft"
)

// StatusResponse answers a c2s.StatusRequest with a JSON chat-style payload
// (packet ID 0x00 in the Status state). The router only ever writes this
// packet - it never needs to decode one coming from a backend, since
// backend responses are relayed as raw bytes rather than re-parsed.
type StatusResponse struct {
	JSONResponse string
}

func (p *StatusResponse) PacketID() minecraft.PacketID { return 0x00 }

func (p *StatusResponse) Encode(w io.Writer) error {
	return minecraft.WriteString(w, p.JSONResponse, 32767)
}

func (p *StatusResponse) Decode(r io.Reader) error {
	s, err := minecraft.ReadString(r, 32767)
	if err != nil {
		return err
	}
	p.JSONResponse = s
	return nil
}

// PongResponse echoes a c2s.PingRequest's payload back unchanged (packet ID
// 0x01 in the Status state).
type PongResponse struct {
	Payload int64
}

func (p *PongResponse) PacketID() minecraft.PacketID { return 0x01 }

func (p *PongResponse) Encode(w io.Writer) error {
	return minecraft.WriteLong(w, p.Payload)
}

func (p *PongResponse) Decode(r io.Reader) error {
	var err error
	p.Payload, err = minecraft.ReadLong(r)
	return err
}

// StatusPayload is the JSON document a StatusResponse carries. Field
// names and nesting mirror vanilla's server-list-ping response exactly, so
// real clients render it without special-casing the router.
type StatusPayload struct {
	Version     StatusVersion     `json:"version"`
	Players     StatusPlayers     `json:"players"`
	Description StatusDescription `json:"description"`
	Favicon     string            `json:"favicon,omitempty"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int                  `json:"max"`
	Online int                  `json:"online"`
	Sample []StatusPlayerSample `json:"sample,omitempty"`
}

type StatusPlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type StatusDescription struct {
	Text string `json:"text"`
}

// BuildStatusResponse renders a StatusPayload into the packet carrying it.
// protocolVersion is normally echoed straight from the client's handshake,
// which is what lets a hand-rolled status response pass for any client
// version without the router tracking a version table of its own.
func BuildStatusResponse(versionName string, protocolVersion int32, maxPlayers, onlinePlayers int, description string) (*StatusResponse, error) {
	payload := StatusPayload{
		Version: StatusVersion{
			Name:     versionName,
			Protocol: protocolVersion,
		},
		Players: StatusPlayers{
			Max:    maxPlayers,
			Online: onlinePlayers,
		},
		Description: StatusDescription{Text: description},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{JSONResponse: string(data)}, nil
}
