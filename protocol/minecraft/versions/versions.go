// Package versions resolves a handshake's protocol version to the wire
// layout its LoginStart packet uses. The Status packets never needed this -
// their bytes are identical across every released version - but LoginStart
// grew new fields three times as Mojang added login chat-signing and then
// mandatory player UUIDs, and a proxy that re-encodes a login has to know
// which shape it's holding.
package versions

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/seiftnesse/mc-router/protocol/minecraft"
	"github.com/seiftnesse/mc-router/protocol/minecraft/packets/c2s"
)

// uuidMode controls whether a LoginStart layout carries a player UUID, and
// whether that field is optional or mandatory.
type uuidMode int

const (
	uuidModeNone uuidMode = iota
	uuidModeOptional
	uuidModeRequired
)

// shape describes one LoginStart wire layout and the lowest protocol
// version it first appeared in.
type shape struct {
	minVersion    int32
	hasSignature  bool
	uuid          uuidMode
}

// table is ordered oldest to newest; Resolve walks it to find the last
// entry whose minVersion is <= the handshake's declared version.
var table = []shape{
	{minVersion: 0, hasSignature: false, uuid: uuidModeNone},
	{minVersion: 759, hasSignature: true, uuid: uuidModeOptional},  // 1.19
	{minVersion: 760, hasSignature: true, uuid: uuidModeOptional},  // 1.19.1-1.19.2
	{minVersion: 761, hasSignature: false, uuid: uuidModeRequired}, // 1.19.3+
}

// Resolve returns the LoginStart layout for protocolVersion: the last entry
// whose minVersion is <= protocolVersion. Versions newer than anything in
// the table get the newest layout with matched=true, so the caller in
// internal/router does not warn about them. matched is false only for a
// version below every entry (a negative one); that also gets the newest
// layout, and the caller logs a warning.
func Resolve(protocolVersion int32) (matched bool, v shape) {
	best := table[len(table)-1]
	matched = false
	for _, s := range table {
		if protocolVersion >= s.minVersion {
			best = s
			matched = true
		}
	}
	return matched, best
}

// ReadLoginStart decodes a LoginStart body using the layout appropriate for
// protocolVersion.
func ReadLoginStart(r io.Reader, protocolVersion int32) (c2s.LoginStart, error) {
	_, sh := Resolve(protocolVersion)
	var ls c2s.LoginStart

	username, err := minecraft.ReadString(r, 16)
	if err != nil {
		return ls, fmt.Errorf("read username: %w", err)
	}
	ls.Username = username

	if sh.hasSignature {
		hasSig, err := minecraft.ReadBool(r)
		if err != nil {
			return ls, fmt.Errorf("read has-signature flag: %w", err)
		}
		ls.HasSignatureData = hasSig
		if hasSig {
			ts, err := minecraft.ReadLong(r)
			if err != nil {
				return ls, fmt.Errorf("read signature timestamp: %w", err)
			}
			ls.SignatureTimestamp = ts

			pkLen, err := minecraft.ReadVarInt(r)
			if err != nil {
				return ls, fmt.Errorf("read public key length: %w", err)
			}
			pk, err := minecraft.ReadByteArray(r, int(pkLen))
			if err != nil {
				return ls, fmt.Errorf("read public key: %w", err)
			}
			ls.PublicKey = pk

			sigLen, err := minecraft.ReadVarInt(r)
			if err != nil {
				return ls, fmt.Errorf("read signature length: %w", err)
			}
			sig, err := minecraft.ReadByteArray(r, int(sigLen))
			if err != nil {
				return ls, fmt.Errorf("read signature: %w", err)
			}
			ls.Signature = sig
		}
	}

	switch sh.uuid {
	case uuidModeRequired:
		raw, err := minecraft.ReadUUID(r)
		if err != nil {
			return ls, fmt.Errorf("read uuid: %w", err)
		}
		id := uuid.UUID(raw)
		ls.UUID = &id
	case uuidModeOptional:
		present, err := minecraft.ReadBool(r)
		if err != nil {
			return ls, fmt.Errorf("read has-uuid flag: %w", err)
		}
		if present {
			raw, err := minecraft.ReadUUID(r)
			if err != nil {
				return ls, fmt.Errorf("read uuid: %w", err)
			}
			id := uuid.UUID(raw)
			ls.UUID = &id
		}
	}

	return ls, nil
}

// WriteLoginStart re-encodes a LoginStart using the layout for
// protocolVersion. The router only ever calls this from tests and from
// static/diagnostic tooling - the forwarding path replays the client's raw
// bytes instead of re-encoding them, so that a field this package doesn't
// know about yet still survives the trip unmodified.
func WriteLoginStart(w io.Writer, protocolVersion int32, ls c2s.LoginStart) error {
	_, sh := Resolve(protocolVersion)

	if err := minecraft.WriteString(w, ls.Username, 16); err != nil {
		return fmt.Errorf("write username: %w", err)
	}

	if sh.hasSignature {
		if err := minecraft.WriteBool(w, ls.HasSignatureData); err != nil {
			return fmt.Errorf("write has-signature flag: %w", err)
		}
		if ls.HasSignatureData {
			if err := minecraft.WriteLong(w, ls.SignatureTimestamp); err != nil {
				return fmt.Errorf("write signature timestamp: %w", err)
			}
			if err := minecraft.WriteVarInt(w, int32(len(ls.PublicKey))); err != nil {
				return fmt.Errorf("write public key length: %w", err)
			}
			if _, err := w.Write(ls.PublicKey); err != nil {
				return fmt.Errorf("write public key: %w", err)
			}
			if err := minecraft.WriteVarInt(w, int32(len(ls.Signature))); err != nil {
				return fmt.Errorf("write signature length: %w", err)
			}
			if _, err := w.Write(ls.Signature); err != nil {
				return fmt.Errorf("write signature: %w", err)
			}
		}
	}

	switch sh.uuid {
	case uuidModeRequired:
		if ls.UUID == nil {
			return fmt.Errorf("protocol %d requires a player uuid but none was set", protocolVersion)
		}
		return minecraft.WriteUUID(w, [16]byte(*ls.UUID))
	case uuidModeOptional:
		if err := minecraft.WriteBool(w, ls.UUID != nil); err != nil {
			return fmt.Errorf("write has-uuid flag: %w", err)
		}
		if ls.UUID != nil {
			return minecraft.WriteUUID(w, [16]byte(*ls.UUID))
		}
	}
	return nil
}
