package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/pingrtc/ping/internal/core"
	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

// Orchestrator is the single seam the transport adapter talks to. It wires
// the connection manager and the room registry together and carries the
// two point-to-point relay operations, which never touch room state.
type Orchestrator struct {
	Registry *Registry
	Rooms    *Rooms
}

// Connect binds a fresh connection and returns its guest identity.
func (o *Orchestrator) Connect(sid domain.ClientID, conn core.SignalConnection) domain.User {
	return o.Registry.Bind(sid, core.NewMemberSession(sid, conn))
}

// Disconnect cleans room membership first, then drops the identity.
func (o *Orchestrator) Disconnect(sid domain.ClientID) {
	o.Rooms.Disconnect(sid)
	o.Registry.Unbind(sid)
}

// RelaySignal forwards an opaque session description to one peer, tagged
// with the sender. Delivery is best-effort: an unknown or gone target is
// a silent drop, never an error back to the sender.
func (o *Orchestrator) RelaySignal(from, to domain.ClientID, payload json.RawMessage) {
	sess, ok := o.Registry.Session(to)
	if !ok {
		log.Debug().Str("module", "app.orchestrator").Str("to", string(to)).Msg("signal target gone, dropped")
		return
	}
	_ = sess.Signal().TrySend(encode(protocol.SignalEvent{Type: protocol.EventSignal, From: from, Signal: payload}))
}

// RelayCandidate is the same contract as RelaySignal on the ICE channel.
func (o *Orchestrator) RelayCandidate(from, to domain.ClientID, candidate json.RawMessage) {
	sess, ok := o.Registry.Session(to)
	if !ok {
		log.Debug().Str("module", "app.orchestrator").Str("to", string(to)).Msg("candidate target gone, dropped")
		return
	}
	_ = sess.Signal().TrySend(encode(protocol.CandidateEvent{Type: protocol.EventICECandidate, From: from, Candidate: candidate}))
}

// encode marshals a server event. Event structs contain nothing that can
// fail to marshal; an error here is a programming bug, logged and dropped.
func encode(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("event marshal failed")
		return nil
	}
	return b
}
