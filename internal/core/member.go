package core

import "github.com/pingrtc/ping/internal/domain"

// memberSession implements MemberSession by pairing identity + transport.
type memberSession struct {
	id   domain.ClientID
	conn SignalConnection
}

func NewMemberSession(id domain.ClientID, conn SignalConnection) MemberSession {
	return &memberSession{id: id, conn: conn}
}

func (m *memberSession) ID() domain.ClientID      { return m.id }
func (m *memberSession) Signal() SignalConnection { return m.conn }
