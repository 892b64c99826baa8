package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mememaster/lobby/internal/model"
)

func TestEncodeDecodeJoinRequest(t *testing.T) {
	msg := JoinRequest{Name: "Alex", RoomCode: "K7M2X", Avatar: "cyan"}

	data, err := Encode(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"JOIN_REQUEST"`)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.IsType(t, JoinRequest{}, decoded)
	assert.Equal(t, msg, decoded)
	assert.Equal(t, model.RoomCode("K7M2X"), decoded.Room())
}

func TestDecodeUnknownTypeIgnored(t *testing.T) {
	decoded, err := Decode([]byte(`{"type":"CHAT","text":"hi","roomCode":"AAAAA"}`))
	assert.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeExtraFieldsIgnored(t *testing.T) {
	decoded, err := Decode([]byte(`{"type":"GAME_STARTED","roomCode":"BBBBB","extra":42}`))
	require.NoError(t, err)
	require.IsType(t, GameStarted{}, decoded)
	assert.Equal(t, model.RoomCode("BBBBB"), decoded.Room())
}

func TestDecodeMalformedFrame(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDecodeJoinAccepted(t *testing.T) {
	data, err := Encode(JoinAccepted{PlayerID: "p-1", RoomCode: "AAAAA"})
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	accepted, ok := decoded.(JoinAccepted)
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("p-1"), accepted.PlayerID)
}
