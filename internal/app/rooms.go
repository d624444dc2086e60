package app

import (
	"fmt"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog/log"

	"github.com/pingrtc/ping/internal/core"
	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

// room is one rendezvous group. Guarded by the owning Rooms mutex; it has
// no lock of its own.
type room struct {
	members    map[domain.ClientID]core.MemberSession
	lastChatAt int64
}

func (rm *room) ids() []domain.ClientID {
	out := make([]domain.ClientID, 0, len(rm.members))
	for sid := range rm.members {
		out = append(out, sid)
	}
	return out
}

func (rm *room) fanout(f core.Frame) {
	for _, ms := range rm.members {
		_ = ms.Signal().TrySend(f)
	}
}

func (rm *room) fanoutExcept(sid domain.ClientID, f core.Frame) {
	for id, ms := range rm.members {
		if id == sid {
			continue
		}
		_ = ms.Signal().TrySend(f)
	}
}

// Rooms is the room registry: the single authoritative membership table.
// One mutex covers the room map and every member set, so each membership
// mutation and the notifications it triggers form one atomic step; the
// next mutation for a room cannot start before the previous one's
// notifications are enqueued. Sends never block (buffered TrySend), so
// nothing waits while the lock is held.
type Rooms struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]*room
	reg   *Registry
	newID func() string
}

func NewRooms(reg *Registry) (*Rooms, error) {
	gen, err := nanoid.Standard(domain.RoomIDLen)
	if err != nil {
		return nil, fmt.Errorf("room code generator: %w", err)
	}
	return &Rooms{
		rooms: make(map[domain.RoomID]*room),
		reg:   reg,
		newID: gen,
	}, nil
}

// Create makes a new room with the requester as sole member and replies
// with the code, then broadcasts the membership list to the room.
func (r *Rooms) Create(sid domain.ClientID) domain.RoomID {
	sess, ok := r.reg.Session(sid)
	if !ok {
		log.Warn().Str("module", "app.rooms").Str("sid", string(sid)).Msg("create from unknown connection")
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var id domain.RoomID
	for {
		id = domain.RoomID(r.newID())
		if _, taken := r.rooms[id]; !taken {
			break
		}
	}

	rm := &room{members: map[domain.ClientID]core.MemberSession{sid: sess}}
	r.rooms[id] = rm

	_ = sess.Signal().TrySend(encode(protocol.RoomCreated{Type: protocol.EventRoomCreated, RoomID: id}))
	rm.fanout(encode(protocol.Participants{Type: protocol.EventParticipants, RoomID: id, Participants: rm.ids()}))

	log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Str("room", string(id)).Msg("room created")
	return id
}

// Join adds the requester to an existing room. On success the requester
// gets join-result ok plus the membership list, and everyone else gets
// user-joined. Re-joining a room the caller is already in is idempotent:
// no second user-joined goes out, only a fresh snapshot to the caller.
// An unknown code mutates nothing and answers {ok:false}.
func (r *Rooms) Join(sid domain.ClientID, roomID domain.RoomID, name string) error {
	sess, ok := r.reg.Session(sid)
	if !ok {
		return domain.ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		_ = sess.Signal().TrySend(encode(protocol.JoinResult{Type: protocol.EventJoinResult, OK: false, Error: "Room not found"}))
		log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join rejected, no such room")
		return domain.ErrRoomNotFound
	}

	r.reg.SetName(sid, name)
	_, already := rm.members[sid]

	_ = sess.Signal().TrySend(encode(protocol.JoinResult{Type: protocol.EventJoinResult, OK: true}))
	if !already {
		rm.fanoutExcept(sid, encode(protocol.UserJoined{Type: protocol.EventUserJoined, ID: sid, Name: r.reg.Name(sid)}))
		rm.members[sid] = sess
	}
	_ = sess.Signal().TrySend(encode(protocol.Participants{Type: protocol.EventParticipants, RoomID: roomID, Participants: rm.ids()}))

	log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Str("room", string(roomID)).Bool("rejoin", already).Msg("joined room")
	return nil
}

// Leave removes the requester from a room, tells the remaining members,
// and deletes the room once empty. Unknown rooms and non-members are a
// silent no-op.
func (r *Rooms) Leave(sid domain.ClientID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(sid, roomID)
}

// Disconnect runs the leave path for every room the connection is in.
// A connection may sit in several rooms at once, so this scans them all.
func (r *Rooms) Disconnect(sid domain.ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rm := range r.rooms {
		if _, ok := rm.members[sid]; ok {
			r.removeLocked(sid, id)
		}
	}
}

func (r *Rooms) removeLocked(sid domain.ClientID, roomID domain.RoomID) {
	rm, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := rm.members[sid]; !ok {
		return
	}
	delete(rm.members, sid)
	rm.fanout(encode(protocol.UserLeft{Type: protocol.EventUserLeft, ID: sid}))
	if len(rm.members) == 0 {
		delete(r.rooms, roomID)
		log.Info().Str("module", "app.rooms").Str("room", string(roomID)).Msg("room emptied, removed")
		return
	}
	log.Info().Str("module", "app.rooms").Str("sid", string(sid)).Str("room", string(roomID)).Msg("left room")
}

// Chat stamps the message with server time and delivers it to every
// member including the sender, so the sender's UI renders it through the
// same path. Stamps are clamped per room so delivery order never shows
// time going backwards. Unknown rooms are a no-op.
func (r *Rooms) Chat(roomID domain.RoomID, sid domain.ClientID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return
	}
	at := time.Now().UnixMilli()
	if at < rm.lastChatAt {
		at = rm.lastChatAt
	}
	rm.lastChatAt = at

	rm.fanout(encode(protocol.ChatEvent{
		Type: protocol.EventChatMessage,
		User: r.reg.Name(sid),
		Text: text,
		At:   at,
	}))
}

// Members returns the member set of a room, or false if it is not active.
func (r *Rooms) Members(roomID domain.RoomID) ([]domain.ClientID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, false
	}
	return rm.ids(), true
}

// List is a read-only snapshot for the debug API.
func (r *Rooms) List() []core.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for id, rm := range r.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: len(rm.members)})
	}
	return out
}
