package fedi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

func TestDecodeUpdate(t *testing.T) {
	t.Parallel()

	frame := fedi.EventFrame{
		Name:    fedi.EventUpdate,
		Payload: `{"id":"1","content":"<p>hi</p>","account":{"id":"2","username":"alice"}}`,
	}

	status, err := fedi.DecodeUpdate(frame)
	require.NoError(t, err)
	assert.Equal(t, "1", status.ID)
	assert.Equal(t, "alice", status.Account.Username)

	_, err = fedi.DecodeUpdate(fedi.EventFrame{Payload: "not json"})
	require.Error(t, err)
}

func TestDecodeNotification(t *testing.T) {
	t.Parallel()

	frame := fedi.EventFrame{
		Name:    fedi.EventNotification,
		Payload: `{"id":"9","type":"mention","account":{"id":"2"}}`,
	}

	notification, err := fedi.DecodeNotification(frame)
	require.NoError(t, err)
	assert.Equal(t, "9", notification.ID)
	assert.Equal(t, "mention", notification.Type)
}

func TestDecodeDelete(t *testing.T) {
	t.Parallel()

	// Delete payloads are a bare status ID, not JSON.
	id := fedi.DecodeDelete(fedi.EventFrame{Name: fedi.EventDelete, Payload: "12345"})
	assert.Equal(t, "12345", id)
}

func TestDecodeConversation(t *testing.T) {
	t.Parallel()

	frame := fedi.EventFrame{
		Name:    fedi.EventConversation,
		Payload: `{"id":"3","unread":true}`,
	}

	conversation, err := fedi.DecodeConversation(frame)
	require.NoError(t, err)
	assert.Equal(t, "3", conversation.ID)
	assert.True(t, conversation.Unread)
}
