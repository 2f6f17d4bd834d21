package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestTokenEngine(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, testPayload{ID: "user1", Name: "foo"})
	require.NoError(t, err)

	var payload testPayload
	require.NoError(t, engine.Verify(token, &payload))
	require.Equal(t, "user1", payload.ID)
	require.Equal(t, "foo", payload.Name)
}

func TestTokenEngineExpired(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(-time.Minute, testPayload{ID: "user1"})
	require.NoError(t, err)

	var payload testPayload
	require.Error(t, engine.Verify(token, &payload))
}

func TestTokenEngineWrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, testPayload{ID: "user1"})
	require.NoError(t, err)

	var payload testPayload
	require.Error(t, NewTokenEngine("another").Verify(token, &payload))
}
