// Package protocol defines the JSON wire format spoken over the signaling
// websocket. Session descriptions and ICE candidates are opaque payloads:
// the server relays them without parsing.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pingrtc/ping/internal/domain"
)

type EventType string

// Client -> server events.
const (
	EventCreateRoom   EventType = "create-room"
	EventJoinRoom     EventType = "join-room"
	EventSignal       EventType = "signal"
	EventICECandidate EventType = "ice-candidate"
	EventChatMessage  EventType = "chat-message"
	EventLeaveRoom    EventType = "leave-room"
	EventPing         EventType = "ping"
)

// Server -> client events.
const (
	EventRoomCreated  EventType = "room-created"
	EventJoinResult   EventType = "join-result"
	EventParticipants EventType = "participants"
	EventUserJoined   EventType = "user-joined"
	EventUserLeft     EventType = "user-left"
	EventPong         EventType = "pong"
	EventError        EventType = "error"
)

var ErrMissingType = errors.New("missing event type")

// Request is the client->server envelope. Which fields are set depends on
// Type; handlers validate what they need and reject the rest locally.
type Request struct {
	Type      EventType       `json:"type"`
	RoomID    string          `json:"roomId,omitempty"`
	UserName  string          `json:"userName,omitempty"`
	To        string          `json:"to,omitempty"`
	Signal    json.RawMessage `json:"signal,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	Text      string          `json:"text,omitempty"`
}

func ParseRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, fmt.Errorf("malformed frame: %w", err)
	}
	if req.Type == "" {
		return Request{}, ErrMissingType
	}
	return req, nil
}

// RoomCreated answers a create-room request.
type RoomCreated struct {
	Type   EventType     `json:"type"`
	RoomID domain.RoomID `json:"roomId"`
}

// JoinResult answers a join-room request, to the requester only.
type JoinResult struct {
	Type  EventType `json:"type"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

// Participants carries the full membership of a room; order is not
// meaningful.
type Participants struct {
	Type         EventType         `json:"type"`
	RoomID       domain.RoomID     `json:"roomId"`
	Participants []domain.ClientID `json:"participants"`
}

type UserJoined struct {
	Type EventType       `json:"type"`
	ID   domain.ClientID `json:"id"`
	Name string          `json:"name"`
}

type UserLeft struct {
	Type EventType       `json:"type"`
	ID   domain.ClientID `json:"id"`
}

// SignalEvent forwards an opaque session description to one peer.
type SignalEvent struct {
	Type   EventType       `json:"type"`
	From   domain.ClientID `json:"from"`
	Signal json.RawMessage `json:"signal"`
}

// CandidateEvent is the same contract as SignalEvent on a distinct
// channel, so receivers can tell descriptions and candidates apart.
type CandidateEvent struct {
	Type      EventType       `json:"type"`
	From      domain.ClientID `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

// ChatEvent reaches every member of the room, sender included. At is
// server time in epoch milliseconds.
type ChatEvent struct {
	Type EventType `json:"type"`
	User string    `json:"user"`
	Text string    `json:"text"`
	At   int64     `json:"at"`
}

type ErrorEvent struct {
	Type  EventType `json:"type"`
	Error string    `json:"error"`
}

type Pong struct {
	Type EventType `json:"type"`
}
