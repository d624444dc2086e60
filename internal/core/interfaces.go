// Package core defines the transport-agnostic seams between the room
// registry and the websocket adapter.
package core

import "github.com/pingrtc/ping/internal/domain"

// Frame is one encoded wire message.
type Frame []byte

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it. TrySend never
// blocks: delivery to a slow or gone peer degrades to an error the
// caller is free to ignore.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds a connection identity and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	ID() domain.ClientID
	Signal() SignalConnection
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}
