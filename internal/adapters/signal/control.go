package signal

import "github.com/pingrtc/ping/internal/protocol"

func (ctl *Controller) handlePing(c *WsSignalConn) {
	ctl.sendJSON(c, protocol.Pong{Type: protocol.EventPong})
}
