package s2c

import (
	"encoding/json"
	"io"

	"github.com/seiftnesse/mc-router/protocol/minecraft"
)

// Disconnect kicks a client during the Login state with a chat-component
// reason (packet ID 0x00). The router never completes a real login - it
// either forwards the raw bytes to a backend or, for a static/kick action,
// sends this and closes.
type Disconnect struct {
	Reason string // JSON chat component, e.g. {"text":"..."}
}

func (p *Disconnect) PacketID() minecraft.PacketID { return 0x00 }

func (p *Disconnect) Encode(w io.Writer) error {
	return minecraft.WriteString(w, p.Reason, 262144)
}

func (p *Disconnect) Decode(r io.Reader) error {
	var err error
	p.Reason, err = minecraft.ReadString(r, 262144)
	return err
}

// disconnectReason is the chat-component shape a plain-text kick message
// gets wrapped in.
type disconnectReason struct {
	Text string `json:"text"`
}

// NewDisconnect wraps a plain-text message as a chat-component JSON reason.
func NewDisconnect(message string) (*Disconnect, error) {
	data, err := json.Marshal(disconnectReason{Text: message})
	if err != nil {
		return nil, err
	}
	return &Disconnect{Reason: string(data)}, nil
}
