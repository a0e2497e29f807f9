package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/model"
)

func newTestCache() *ConversationCache {
	synth := NewSynthesizer()
	synth.now = fixedClock()
	return NewConversationCache(NewTemplateStore(), synth)
}

func TestPopulateIdempotent(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}

	first := cache.Populate(key, testSelf, testCounterpart, 15)
	second := cache.Populate(key, testSelf, testCounterpart, 15)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestAppendPreservesCallOrder(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 7, CounterpartID: 8}

	base := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	m1 := model.Message{ID: 1, Sender: testSelf, Content: "first", CreatedAt: base.Add(time.Hour)}
	m2 := model.Message{ID: 2, Sender: testSelf, Content: "second", CreatedAt: base}
	m3 := model.Message{ID: 3, Sender: testSelf, Content: "third", CreatedAt: base.Add(30 * time.Minute)}

	cache.Append(key, m1)
	cache.Append(key, m2)
	cache.Append(key, m3)

	// append order wins over timestamp order
	got := cache.Get(key)
	require.Len(t, got, 3)
	assert.Equal(t, []model.Message{m1, m2, m3}, got)
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	cache := newTestCache()
	assert.Empty(t, cache.Get(model.ConversationKey{ChatID: 1, CounterpartID: 2}))
}

func TestClearResetsState(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}

	cache.Populate(key, testSelf, testCounterpart, 15)
	cache.Append(key, model.Message{ID: 12345, Sender: testSelf, Content: "extra"})
	cache.Clear(key)

	assert.Empty(t, cache.Get(key))

	fresh := cache.Populate(key, testSelf, testCounterpart, 15)
	require.NotEmpty(t, fresh)
	for _, m := range fresh {
		assert.NotEqual(t, "extra", m.Content)
	}
}

func TestCompositeKeysAreDistinct(t *testing.T) {
	cache := newTestCache()
	keyA := model.ConversationKey{ChatID: 1001, CounterpartID: 999}
	keyB := model.ConversationKey{ChatID: 1001, CounterpartID: 998}

	cache.Append(keyA, model.Message{ID: 1, Sender: testSelf, Content: "for A"})

	assert.Len(t, cache.Get(keyA), 1)
	assert.Empty(t, cache.Get(keyB))
}

func TestRemoveMessage(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 7, CounterpartID: 8}

	cache.Append(key, model.Message{ID: 1, Sender: testSelf, Content: "keep"})
	cache.Append(key, model.Message{ID: 2, Sender: testSelf, Content: "drop"})

	assert.True(t, cache.Remove(key, 2))
	assert.False(t, cache.Remove(key, 2))

	got := cache.Get(key)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Content)
}

func TestMarkReadIsMonotonic(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 7, CounterpartID: 8}

	cache.Append(key, model.Message{ID: 1, Sender: testCounterpart, Content: "hi", IsRead: false})

	assert.True(t, cache.MarkRead(key, 1))
	assert.True(t, cache.Get(key)[0].IsRead)

	// marking again is a no-op, there is no way back to unread
	assert.True(t, cache.MarkRead(key, 1))
	assert.True(t, cache.Get(key)[0].IsRead)

	assert.False(t, cache.MarkRead(key, 99))
}

func TestMarkConversationRead(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 7, CounterpartID: testCounterpart.ID}

	cache.Append(key, model.Message{ID: 1, Sender: testCounterpart, IsRead: false})
	cache.Append(key, model.Message{ID: 2, Sender: testSelf, IsRead: false})
	cache.Append(key, model.Message{ID: 3, Sender: testCounterpart, IsRead: false})

	assert.Equal(t, 2, cache.MarkConversationRead(key))
	assert.Equal(t, 0, cache.MarkConversationRead(key))

	got := cache.Get(key)
	assert.True(t, got[0].IsRead)
	assert.False(t, got[1].IsRead, "own messages are not the sweep's business")
	assert.True(t, got[2].IsRead)
	assert.Equal(t, 0, cache.UnreadCount(key))
}

func TestMarkMessageReadByIDOnly(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 7, CounterpartID: 8}

	cache.Append(key, model.Message{ID: 1, Sender: testCounterpart, IsRead: false})

	assert.True(t, cache.MarkMessageRead(1))
	assert.True(t, cache.Get(key)[0].IsRead)
	assert.False(t, cache.MarkMessageRead(404))
}

func TestPopulateEndToEnd1001(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}

	cache.Populate(key, testSelf, testCounterpart, 15)
	messages := cache.Get(key)

	require.NotEmpty(t, messages)
	last := messages[len(messages)-1]
	assert.Equal(t, testCounterpart.ID, last.Sender.ID)
	assert.Equal(t, "你的設計稿我看過了，非常棒！想約個時間討論細節。", last.Content)
	assert.False(t, last.IsRead)
}

func TestStats(t *testing.T) {
	cache := newTestCache()

	cache.Append(model.ConversationKey{ChatID: 1, CounterpartID: 2}, model.Message{ID: 1})
	cache.Append(model.ConversationKey{ChatID: 1, CounterpartID: 2}, model.Message{ID: 2})
	cache.Append(model.ConversationKey{ChatID: 3, CounterpartID: 4}, model.Message{ID: 3})

	conversations, messages := cache.Stats()
	assert.Equal(t, 2, conversations)
	assert.Equal(t, 3, messages)
}
