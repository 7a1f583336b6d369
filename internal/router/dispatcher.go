// Package router implements the connection state machine and dispatch
// logic: reading a handshake, resolving it to a configured Action, and
// either answering in-process or forwarding to a backend.
package router

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	mcnet "github.com/seiftnesse/mc-router/common/net"
	"github.com/seiftnesse/mc-router/common/ioutil"
	"github.com/seiftnesse/mc-router/internal/config"
	"github.com/seiftnesse/mc-router/protocol/minecraft"
	"github.com/seiftnesse/mc-router/protocol/minecraft/legacy"
	mcommon "github.com/seiftnesse/mc-router/protocol/minecraft/packets/common"
	"github.com/seiftnesse/mc-router/protocol/minecraft/packets/c2s"
	"github.com/seiftnesse/mc-router/protocol/minecraft/packets/s2c"
	"github.com/seiftnesse/mc-router/protocol/minecraft/versions"
)

// Dispatcher handles one accepted connection end-to-end.
type Dispatcher struct {
	Store            *config.Store
	Dialer           Dialer
	Log              *logrus.Logger
	HandshakeTimeout time.Duration
}

// HandleConnection reads the connection's opening bytes, decides what to do
// with it, and runs that decision to completion. It always closes conn
// before returning.
func (d *Dispatcher) HandleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	log := d.Log.WithField("addr", conn.RemoteAddr().String())

	if d.HandshakeTimeout > 0 {
		if err := mcnet.SetTCPDeadlines(conn, d.HandshakeTimeout, d.HandshakeTimeout); err != nil {
			log.WithError(err).Debug("set handshake deadline")
		}
	}

	br := bufio.NewReader(conn)

	isLegacy, err := legacy.Detect(br)
	if err != nil {
		log.WithError(err).Debug("legacy detect")
		return
	}
	if isLegacy {
		d.handleLegacy(log, br, conn)
		return
	}

	sess := NewSession()
	if err := d.handleModern(ctx, log, br, conn, sess); err != nil {
		logDispatchError(log, err)
	}
}

func logDispatchError(log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection closed before a complete handshake arrived")
	case errors.Is(err, ErrNoRoute):
		log.Debug("no route for hostname, closing")
	case errors.Is(err, ErrUnsupportedNextState):
		log.WithError(err).Debug("unsupported next state, closing")
	default:
		log.WithError(err).Warn("connection error")
	}
}

func (d *Dispatcher) handleLegacy(log *logrus.Entry, br *bufio.Reader, conn net.Conn) {
	defaultHost := (&config.StaticAction{}).Defaulted(0)
	err := legacy.Handle(br, conn, func() (legacy.Response, error) {
		return legacy.Response{
			MOTD:          defaultHost.Description,
			OnlinePlayers: defaultHost.CurPlayers,
			MaxPlayers:    defaultHost.MaxPlayers,
		}, nil
	})
	if err != nil {
		log.WithError(err).Debug("legacy ping")
	}
}

// handleModern services every post-1.7 connection: a VarInt-framed
// Handshake followed by either Status or Login packets. sess starts in
// StateHandshaking; every later read or write only happens after sess has
// advanced to the state that permits it, so a packet handled in the wrong
// state fails closed instead of silently being accepted.
func (d *Dispatcher) handleModern(ctx context.Context, log *logrus.Entry, br *bufio.Reader, conn net.Conn, sess *Session) error {
	cache := ioutil.NewCachedReader(br)

	hs := &mcommon.Handshake{}
	if err := minecraft.ReadPacket(cache, hs); err != nil {
		return fmt.Errorf("read handshake: %w", err)
	}

	log = log.WithFields(logrus.Fields{
		"hostname":         hs.ServerAddress,
		"protocol_version": hs.ProtocolVersion,
		"next_state":       int32(hs.NextState),
	})

	action, ok := d.Store.Resolve(hs.ServerAddress)
	if !ok {
		return ErrNoRoute
	}

	switch hs.NextState {
	case mcommon.NextStateStatus:
		if err := sess.Advance(StateStatus); err != nil {
			return err
		}
		return d.handleStatus(ctx, log, cache, br, conn, hs, action, sess)
	case mcommon.NextStateLogin:
		if err := sess.Advance(StateLogin); err != nil {
			return err
		}
		return d.handleLogin(ctx, log, cache, br, conn, hs, action, sess)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedNextState, hs.NextState)
	}
}

func (d *Dispatcher) handleStatus(ctx context.Context, log *logrus.Entry, cache *ioutil.CachedReader, br *bufio.Reader, conn net.Conn, hs *mcommon.Handshake, action config.Action, sess *Session) error {
	if sess.State() != StateStatus {
		return fmt.Errorf("router: handleStatus called outside the status state (got %s)", sess.State())
	}

	statusAction, ok := action.GetStatusAction()
	if !ok {
		return ErrNoRoute
	}

	if statusAction.Forward != nil {
		if err := sess.Advance(StateProxy); err != nil {
			return err
		}
		handshakeBytes := append([]byte(nil), cache.Cache()...)
		return d.forward(ctx, log, br, conn, *statusAction.Forward, handshakeBytes)
	}
	if statusAction.Static == nil {
		return fmt.Errorf("%w: hostname's status action has neither forward nor static", ErrNoRoute)
	}

	// Static: answer in-process, never touching a backend.
	reader := cache.Release()
	static := statusAction.Static.Defaulted(hs.ProtocolVersion)

	var req c2s.StatusRequest
	if err := minecraft.ReadPacket(reader, &req); err != nil {
		return fmt.Errorf("read status request: %w", err)
	}

	resp, err := s2c.BuildStatusResponse(static.VersionName, *static.ProtocolVersion, static.MaxPlayers, static.CurPlayers, static.Description)
	if err != nil {
		return fmt.Errorf("build status response: %w", err)
	}
	_ = conn.SetDeadline(time.Time{})
	if err := minecraft.WritePacket(conn, resp); err != nil {
		return fmt.Errorf("write status response: %w", err)
	}

	var ping c2s.PingRequest
	if err := minecraft.ReadPacket(reader, &ping); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// Many clients close right after reading the status
			// response without ever pinging.
			return sess.Advance(StateClosed)
		}
		return fmt.Errorf("read ping request: %w", err)
	}

	pong := &s2c.PongResponse{Payload: ping.Payload}
	if err := minecraft.WritePacket(conn, pong); err != nil {
		return fmt.Errorf("write pong response: %w", err)
	}
	return sess.Advance(StateClosed)
}

func (d *Dispatcher) handleLogin(ctx context.Context, log *logrus.Entry, cache *ioutil.CachedReader, br *bufio.Reader, conn net.Conn, hs *mcommon.Handshake, action config.Action, sess *Session) error {
	if sess.State() != StateLogin {
		return fmt.Errorf("router: handleLogin called outside the login state (got %s)", sess.State())
	}

	loginAction, ok := action.GetLoginAction()
	if !ok {
		return ErrLoginToStatusOnly
	}

	if loginAction.Forward != nil {
		matched, _ := versions.Resolve(hs.ProtocolVersion)
		if !matched {
			log.Warnf("no known login-start layout for protocol %d, using the newest known one", hs.ProtocolVersion)
		}
		ls, err := readLoginStartPacket(cache, hs.ProtocolVersion)
		if err != nil {
			return fmt.Errorf("read login start: %w", err)
		}
		log = log.WithField("username", ls.Username)

		if err := sess.Advance(StateProxy); err != nil {
			return err
		}
		handshakeAndLogin := append([]byte(nil), cache.Cache()...)
		return d.forward(ctx, log, br, conn, *loginAction.Forward, handshakeAndLogin)
	}

	if loginAction.Static == nil {
		return fmt.Errorf("%w: hostname's login action has neither forward nor static", ErrLoginToStatusOnly)
	}

	// Static login action: the router can't complete authentication, so
	// the only thing it can do is kick with a message.
	reader := cache.Release()
	ls, err := readLoginStartPacket(reader, hs.ProtocolVersion)
	if err != nil {
		return fmt.Errorf("read login start: %w", err)
	}
	log.WithField("username", ls.Username).Debug("kicking login with static message")

	static := loginAction.Static.Defaulted(hs.ProtocolVersion)
	kick, err := s2c.NewDisconnect(static.KickMessage)
	if err != nil {
		return fmt.Errorf("build disconnect: %w", err)
	}
	if err := minecraft.WritePacket(conn, kick); err != nil {
		return fmt.Errorf("write disconnect: %w", err)
	}
	return sess.Advance(StateClosed)
}

// loginStartPacketID is the Login state's packet ID 0x00, same numbering as
// Handshake and StatusResponse since packet IDs are only unique per state.
const loginStartPacketID = 0x00

// readLoginStartPacket strips a LoginStart frame's length prefix and packet
// ID before decoding its body with the version-appropriate layout.
func readLoginStartPacket(r io.Reader, protocolVersion int32) (c2s.LoginStart, error) {
	id, body, err := minecraft.ReadPacketRaw(r)
	if err != nil {
		return c2s.LoginStart{}, err
	}
	if id != loginStartPacketID {
		return c2s.LoginStart{}, &minecraft.WrongPacketIDError{Want: loginStartPacketID, Got: id}
	}
	return versions.ReadLoginStart(bytes.NewReader(body), protocolVersion)
}

// forward dials addr, replays the cached client bytes (the frames already
// decoded locally) verbatim, and splices the rest of the connection.
func (d *Dispatcher) forward(ctx context.Context, log *logrus.Entry, br *bufio.Reader, conn net.Conn, addr mcnet.ServerAddr, replay []byte) error {
	backend, err := d.Dialer.Dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial backend: %w", err)
	}

	if _, err := backend.Write(replay); err != nil {
		backend.Close()
		return fmt.Errorf("replay handshake to backend: %w", err)
	}

	log.WithField("backend", addr.String()).Debug("forwarding connection")

	// Clear the handshake deadline - this connection now runs for as long
	// as the player stays connected.
	_ = conn.SetDeadline(time.Time{})

	Splice(conn, br, backend)
	backend.Close()
	return nil
}
