// Package legacy answers the pre-Netty (pre-1.7) server-list-ping
// variants. Those clients never send a VarInt-framed Handshake - they open
// with a bare 0xFE, so they have to be detected and handled before any
// framed packet is attempted.
package legacy

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf16"
)

// Response is what the caller supplies to answer a legacy ping, independent
// of which legacy variant asked for it.
type Response struct {
	ProtocolVersion int32
	ServerVersion   string
	MOTD            string
	OnlinePlayers   int
	MaxPlayers      int
}

// Detect peeks at the first byte without consuming it and reports whether
// the connection opens with a legacy ping. The caller should fall through
// to ordinary framed packet handling when ok is false.
func Detect(br *bufio.Reader) (ok bool, err error) {
	peek, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return peek[0] == 0xFE, nil
}

// Handle services a connection already confirmed by Detect to be a legacy
// ping, writing the appropriate reply and consuming exactly the bytes the
// client sent. respond is called once Handle knows which legacy variant is
// in play and needs a Response to answer with.
func Handle(br *bufio.Reader, w io.Writer, respond func() (Response, error)) error {
	peek, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return err
	}

	switch {
	case len(peek) >= 3 && peek[1] == 0x01 && peek[2] == 0xFA:
		return handleV16(br, w, respond)
	case len(peek) >= 2 && peek[1] == 0x01:
		if _, err := br.Discard(2); err != nil {
			return err
		}
		return handleV14(w, respond)
	default:
		if _, err := br.Discard(1); err != nil {
			return err
		}
		return handleV13(w, respond)
	}
}

// handleV13 answers the pre-1.4 ping (a bare 0xFE), which carries no
// request fields at all.
func handleV13(w io.Writer, respond func() (Response, error)) error {
	resp, err := respond()
	if err != nil {
		return err
	}
	status := fmt.Sprintf("%s§%d§%d", resp.MOTD, resp.OnlinePlayers, resp.MaxPlayers)
	return writeKick(w, status)
}

// handleV14 answers the 1.4-1.5 ping (0xFE 0x01), whose request carries no
// fields but whose response includes a protocol/version preamble.
func handleV14(w io.Writer, respond func() (Response, error)) error {
	resp, err := respond()
	if err != nil {
		return err
	}
	// The 1.4.2 release is what first spoke this reply shape; report it
	// regardless of what the caller's Response.ProtocolVersion says, since
	// a 1.4-era client would not understand a later protocol number here.
	resp.ProtocolVersion = 47
	resp.ServerVersion = "1.4.2"
	status := formatV16Status(resp)
	return writeKick(w, status)
}

// pluginMessageID is the channel name 1.6 clients send their ping request
// under.
const pluginMessageID = "MC|PingHost"

// handleV16 answers the 1.6+ plugin-message-style ping
// (0xFE 0x01 0xFA "MC|PingHost" <payload>). A channel name other than
// MC|PingHost and an inconsistent payload length are tolerated, and the
// client's declared hostname/port are read but not used. A payload that
// ends before the port is an error and gets no answer.
func handleV16(br *bufio.Reader, w io.Writer, respond func() (Response, error)) error {
	if _, err := br.Discard(3); err != nil {
		return err
	}

	channel, err := readUTF16String(br)
	if err != nil {
		return fmt.Errorf("legacy: read plugin channel: %w", err)
	}
	if channel != pluginMessageID {
		// Not fatal: some proxies/clients send a different channel name
		// on this opening; the ping still gets answered.
		_ = channel
	}

	var payloadLen uint16
	if err := readUint16(br, &payloadLen); err != nil {
		return fmt.Errorf("legacy: read payload length: %w", err)
	}

	var clientProtocol uint8
	if err := readUint8(br, &clientProtocol); err != nil {
		return fmt.Errorf("legacy: read client protocol: %w", err)
	}

	if _, err := readUTF16String(br); err != nil {
		return fmt.Errorf("legacy: read hostname: %w", err)
	}

	var port uint32
	if err := readUint32(br, &port); err != nil {
		return fmt.Errorf("legacy: read port: %w", err)
	}

	resp, err := respond()
	if err != nil {
		return err
	}
	resp.ProtocolVersion = 73
	resp.ServerVersion = "1.6.1"
	status := formatV16Status(resp)
	return writeKick(w, status)
}

func formatV16Status(resp Response) string {
	return fmt.Sprintf("§1\x00%d\x00%s\x00%s\x00%d\x00%d",
		resp.ProtocolVersion, resp.ServerVersion, resp.MOTD, resp.OnlinePlayers, resp.MaxPlayers)
}

// writeKick sends the legacy disconnect packet: 0xFF followed by a
// UTF-16BE string prefixed with its length in code units (not bytes).
func writeKick(w io.Writer, status string) error {
	units := utf16.Encode([]rune(status))
	if _, err := w.Write([]byte{0xFF}); err != nil {
		return err
	}
	if err := writeUint16(w, uint16(len(units))); err != nil {
		return err
	}
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		buf[i*2] = byte(u >> 8)
		buf[i*2+1] = byte(u)
	}
	_, err := w.Write(buf)
	return err
}

func readUTF16String(r io.Reader) (string, error) {
	var count uint16
	if err := readUint16(r, &count); err != nil {
		return "", err
	}
	buf := make([]byte, int(count)*2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	units := make([]uint16, count)
	for i := range units {
		units[i] = uint16(buf[i*2])<<8 | uint16(buf[i*2+1])
	}
	return string(utf16.Decode(units)), nil
}

func readUint8(r io.Reader, out *uint8) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*out = buf[0]
	return nil
}

func readUint16(r io.Reader, out *uint16) error {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*out = uint16(buf[0])<<8 | uint16(buf[1])
	return nil
}

func readUint32(r io.Reader, out *uint32) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*out = uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return nil
}

func writeUint16(w io.Writer, v uint16) error {
	_, err := w.Write([]byte{byte(v >> 8), byte(v)})
	return err
}
