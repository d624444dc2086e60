package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, sid domain.ClientID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump ping failed")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns disconnect cleanup: whatever way the connection dies, the
// registry hears about it exactly once, here.
func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.ClientID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Orch.Disconnect(sid)
		cancel()
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.ReadLimit)
	readWait := ctl.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
			ctl.dispatch(sid, c, data)
		}
	}
}

// dispatch routes one inbound frame. Bad input is rejected locally with an
// error event and never mutates state.
func (ctl *Controller) dispatch(sid domain.ClientID, c *WsSignalConn, data []byte) {
	req, err := protocol.ParseRequest(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad frame")
		ctl.sendJSON(c, protocol.ErrorEvent{Type: protocol.EventError, Error: "bad_payload"})
		return
	}

	switch req.Type {
	case protocol.EventCreateRoom:
		ctl.handleCreate(sid)
	case protocol.EventJoinRoom:
		ctl.handleJoin(sid, c, req)
	case protocol.EventLeaveRoom:
		ctl.handleLeave(sid, req)
	case protocol.EventSignal:
		ctl.handleRelaySignal(sid, c, req)
	case protocol.EventICECandidate:
		ctl.handleRelayCandidate(sid, c, req)
	case protocol.EventChatMessage:
		ctl.handleChat(sid, c, req)
	case protocol.EventPing:
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", string(req.Type)).Msg("unknown event")
		ctl.sendJSON(c, protocol.ErrorEvent{Type: protocol.EventError, Error: "unknown_event"})
	}
}

func (ctl *Controller) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
