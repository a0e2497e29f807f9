package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/model"
	"mockchat/platform"
)

func newTestOutbox(cache *ConversationCache, failProb float64) *Outbox {
	cfg := platform.Config{SendFailProb: failProb}
	o := NewOutbox(cache, cfg)
	o.now = fixedClock()
	return o
}

func TestSendConfirmed(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	outbox := newTestOutbox(cache, 0)

	msg, err := outbox.Send(context.Background(), key, testSelf, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, testSelf, msg.Sender)

	state, ok := outbox.State(msg.ID)
	require.True(t, ok)
	assert.Equal(t, SendConfirmed, state)

	got := cache.Get(key)
	require.Len(t, got, 1)
	assert.Equal(t, msg.ID, got[0].ID)
}

func TestSendRolledBackOnFailure(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	outbox := newTestOutbox(cache, 1.0)

	msg, err := outbox.Send(context.Background(), key, testSelf, "doomed")
	require.ErrorIs(t, err, ErrSendFailed)
	assert.Zero(t, msg)

	// the optimistic copy is gone again
	assert.Empty(t, cache.Get(key))

	state, ok := outbox.State(fixedClock()().UnixMilli())
	require.True(t, ok)
	assert.Equal(t, SendRolledBack, state)
}

func TestSendImageCarriesAttachment(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	outbox := newTestOutbox(cache, 0)

	msg, err := outbox.SendImage(context.Background(), key, testSelf, "file:///tmp/photo.jpg")
	require.NoError(t, err)
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, model.AttachmentImage, msg.Attachment.Type)
	assert.Equal(t, "file:///tmp/photo.jpg", msg.Attachment.URL)
	assert.Empty(t, msg.Content)
}

func TestSendStateString(t *testing.T) {
	assert.Equal(t, "pending", SendPending.String())
	assert.Equal(t, "confirmed", SendConfirmed.String())
	assert.Equal(t, "rolled_back", SendRolledBack.String())
}
