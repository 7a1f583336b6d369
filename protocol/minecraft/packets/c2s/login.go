package c2s

import "github.com/google/uuid"

// LoginStart is the version-agnostic representation of the login-state
// packet ID 0x00. Its wire layout has changed release to release (a bare
// username pre-1.19, an optional signature block in 1.19-1.19.2, a
// mandatory UUID from 1.19.3 on) - see protocol/minecraft/versions for the
// per-version codec that reads/writes this shape.
type LoginStart struct {
	Username string

	// HasSignatureData, Timestamp, PublicKey and Signature only apply to
	// protocol versions that carried Mojang's login chat-signing data
	// (1.19 through 1.19.2). The router never validates them; they are
	// only here so a replayed login to the backend is byte-identical.
	HasSignatureData   bool
	SignatureTimestamp int64
	PublicKey          []byte
	Signature          []byte

	// UUID is present from 1.19 on, optional through 1.19.2 and mandatory
	// from 1.19.3 on. Nil means the client didn't send one.
	UUID *uuid.UUID
}
