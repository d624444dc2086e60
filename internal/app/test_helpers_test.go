package app

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pingrtc/ping/internal/core"
	"github.com/pingrtc/ping/internal/domain"
	"github.com/pingrtc/ping/internal/protocol"
)

// fakeConn records everything the registry fans out to one connection.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes recorded frames of one event type, in delivery order.
func (f *fakeConn) events(t *testing.T, typ protocol.EventType) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, fr := range f.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(fr, &m))
		if m["type"] == string(typ) {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

type fixture struct {
	reg   *Registry
	rooms *Rooms
	orch  *Orchestrator
	conns map[domain.ClientID]*fakeConn
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := NewRegistry()
	rooms, err := NewRooms(reg)
	require.NoError(t, err)
	return &fixture{
		reg:   reg,
		rooms: rooms,
		orch:  &Orchestrator{Registry: reg, Rooms: rooms},
		conns: make(map[domain.ClientID]*fakeConn),
	}
}

func (fx *fixture) connect(sid domain.ClientID) *fakeConn {
	conn := &fakeConn{}
	fx.orch.Connect(sid, conn)
	fx.conns[sid] = conn
	return conn
}
