package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

// Room lifecycle handlers. The registry answers the requester itself
// (room-created, join-result, participants), so these stay thin: decode,
// validate, hand off.

func (ctl *Controller) handleCreate(sid domain.ClientID) {
	roomID := ctl.Orch.Rooms.Create(sid)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(roomID)).Msg("create-room")
}

func (ctl *Controller) handleJoin(sid domain.ClientID, c *WsSignalConn, req protocol.Request) {
	if req.RoomID == "" {
		ctl.sendJSON(c, protocol.JoinResult{Type: protocol.EventJoinResult, OK: false, Error: "Room not found"})
		return
	}
	if err := ctl.Orch.Rooms.Join(sid, domain.RoomID(req.RoomID), req.UserName); err != nil {
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room", req.RoomID).Msg("join-room failed")
	}
}

func (ctl *Controller) handleLeave(sid domain.ClientID, req protocol.Request) {
	if req.RoomID == "" {
		return
	}
	ctl.Orch.Rooms.Leave(sid, domain.RoomID(req.RoomID))
}
