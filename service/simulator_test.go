package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/model"
	"mockchat/platform"
)

func floatSeq(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func newTestSimulator(cache *ConversationCache, key model.ConversationKey, interval time.Duration) *DeliverySimulator {
	cfg := platform.Config{
		SimInterval:    interval,
		SimMessageProb: 0.2,
		SimTypingProb:  0.3,
	}
	return NewDeliverySimulator(cache, key, testCounterpart, cfg)
}

func TestTickDeliversInboundMessage(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	sim := newTestSimulator(cache, key, time.Minute)
	sim.now = fixedClock()
	sim.randFloat = floatSeq(0.0) // both rolls hit

	sim.tick()

	messages := cache.Get(key)
	require.Len(t, messages, 1)
	assert.Equal(t, testCounterpart, messages[0].Sender)
	assert.False(t, messages[0].IsRead)
	assert.Contains(t, followUpPool, messages[0].Content)
	assert.True(t, sim.Typing())
}

func TestTickCanDeliverNothing(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	sim := newTestSimulator(cache, key, time.Minute)
	sim.randFloat = floatSeq(1.0) // both rolls miss

	sim.tick()

	assert.Empty(t, cache.Get(key))
	assert.False(t, sim.Typing())
}

func TestTypingExpires(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 1001, CounterpartID: testCounterpart.ID}
	sim := newTestSimulator(cache, key, time.Minute)

	current := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	sim.now = func() time.Time { return current }
	// no message, typing hit, minimal duration roll (2s)
	sim.randFloat = floatSeq(1.0, 0.0, 0.0)

	sim.tick()
	assert.True(t, sim.Typing())

	current = current.Add(3 * time.Second)
	assert.False(t, sim.Typing())
}

func TestStartDeliversUntilStopped(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 42, CounterpartID: testCounterpart.ID}
	sim := newTestSimulator(cache, key, 5*time.Millisecond)
	sim.randFloat = floatSeq(0.0) // deliver on every tick

	go sim.Start()

	require.Eventually(t, func() bool {
		return len(cache.Get(key)) > 0
	}, 2*time.Second, 5*time.Millisecond, "no message delivered before stop")

	sim.Stop()
	time.Sleep(20 * time.Millisecond) // let the loop wind down

	delivered := len(cache.Get(key))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, delivered, len(cache.Get(key)), "message delivered after Stop")
}

func TestStopIsIdempotent(t *testing.T) {
	cache := newTestCache()
	key := model.ConversationKey{ChatID: 42, CounterpartID: testCounterpart.ID}
	sim := newTestSimulator(cache, key, time.Minute)

	go sim.Start()
	sim.Stop()
	assert.NotPanics(t, func() { sim.Stop() })
}
