package signal

import (
	"strings"

	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

// Relay and chat handlers. Payloads are opaque; the only validation is
// that the fields the server itself needs are present.

func (ctl *Controller) handleRelaySignal(sid domain.ClientID, c *WsSignalConn, req protocol.Request) {
	if req.To == "" || len(req.Signal) == 0 {
		ctl.sendJSON(c, protocol.ErrorEvent{Type: protocol.EventError, Error: "bad_payload"})
		return
	}
	ctl.Orch.RelaySignal(sid, domain.ClientID(req.To), req.Signal)
}

func (ctl *Controller) handleRelayCandidate(sid domain.ClientID, c *WsSignalConn, req protocol.Request) {
	if req.To == "" || len(req.Candidate) == 0 {
		ctl.sendJSON(c, protocol.ErrorEvent{Type: protocol.EventError, Error: "bad_payload"})
		return
	}
	ctl.Orch.RelayCandidate(sid, domain.ClientID(req.To), req.Candidate)
}

func (ctl *Controller) handleChat(sid domain.ClientID, c *WsSignalConn, req protocol.Request) {
	if req.RoomID == "" || strings.TrimSpace(req.Text) == "" {
		ctl.sendJSON(c, protocol.ErrorEvent{Type: protocol.EventError, Error: "bad_payload"})
		return
	}
	ctl.Orch.Rooms.Chat(domain.RoomID(req.RoomID), sid, req.Text)
}
