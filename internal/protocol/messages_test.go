package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"type":"join-room","roomId":"ab12cd","userName":"Bo"}`))
	require.NoError(t, err)
	assert.Equal(t, EventJoinRoom, req.Type)
	assert.Equal(t, "ab12cd", req.RoomID)
	assert.Equal(t, "Bo", req.UserName)
}

func TestParseRequestMalformed(t *testing.T) {
	_, err := ParseRequest([]byte(`{"type":`))
	require.Error(t, err)
}

func TestParseRequestMissingType(t *testing.T) {
	_, err := ParseRequest([]byte(`{"roomId":"ab12cd"}`))
	require.ErrorIs(t, err, ErrMissingType)
}

// The relayed payload must survive untouched; the server never parses it.
func TestParseRequestOpaqueSignal(t *testing.T) {
	raw := `{"sdp":"v=0\r\n...","type":"offer","weird":[1,null,{"x":true}]}`
	req, err := ParseRequest([]byte(`{"type":"signal","to":"c2","signal":` + raw + `}`))
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(req.Signal))
}
