package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingrtc/ping/internal/core"
)

func TestRegistryBindAssignsGuest(t *testing.T) {
	reg := NewRegistry()
	u := reg.Bind("c1", core.NewMemberSession("c1", &fakeConn{}))
	assert.Equal(t, "c1", string(u.ID))
	assert.Regexp(t, `^Guest-\d{4}$`, u.Name)

	sess, ok := reg.Session("c1")
	require.True(t, ok)
	assert.Equal(t, "c1", string(sess.ID()))
}

func TestRegistrySetNameFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("c1", core.NewMemberSession("c1", &fakeConn{}))

	reg.SetName("c1", "Bo")
	assert.Equal(t, "Bo", reg.Name("c1"))

	// Blank input keeps the previous name.
	reg.SetName("c1", "   ")
	assert.Equal(t, "Bo", reg.Name("c1"))

	// Unknown connections never error.
	reg.SetName("ghost", "X")
	assert.Equal(t, "Guest", reg.Name("ghost"))
}

func TestRegistryUnbind(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("c1", core.NewMemberSession("c1", &fakeConn{}))
	reg.Unbind("c1")

	_, ok := reg.Session("c1")
	assert.False(t, ok)
	assert.Equal(t, "Guest", reg.Name("c1"))
}
