package service

import (
	"math/rand"
	"sync"
	"time"

	"mockchat/model"
	"mockchat/platform"
)

// followUpPool is what the simulated counterpart says out of the blue. It is
// deliberately separate from the template catalog.
var followUpPool = []string{
	"這是一個範例訊息",
	"我看過你的作品，很不錯！",
	"希望能有機會合作",
	"你熟悉React Native嗎？",
	"想跟你討論一個專案",
}

// DeliverySimulator emulates asynchronous inbound delivery for one active
// conversation in place of a real push transport. On every tick it may append
// a fabricated counterpart message to the cache and may raise a transient
// typing indicator.
//
// Lifecycle is strictly Idle -> Active -> Cancelled: Start runs the loop until
// Stop, Stop is idempotent, and a stopped simulator cannot be restarted.
type DeliverySimulator struct {
	cache       *ConversationCache
	key         model.ConversationKey
	counterpart model.Participant

	interval    time.Duration
	messageProb float64
	typingProb  float64

	// swapped out by tests
	randFloat func() float64
	randIntn  func(int) int
	now       func() time.Time

	mu          sync.Mutex
	typingUntil time.Time

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewDeliverySimulator(cache *ConversationCache, key model.ConversationKey, counterpart model.Participant, cfg platform.Config) *DeliverySimulator {
	return &DeliverySimulator{
		cache:       cache,
		key:         key,
		counterpart: counterpart,
		interval:    cfg.SimInterval,
		messageProb: cfg.SimMessageProb,
		typingProb:  cfg.SimTypingProb,
		randFloat:   rand.Float64,
		randIntn:    rand.Intn,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start runs the delivery loop. Call it in its own goroutine; it returns when
// Stop is called.
func (s *DeliverySimulator) Start() {
	logger.Infof("[sim] delivery simulator started for chat %d/%d (interval %v)", s.key.ChatID, s.key.CounterpartID, s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopChan:
			logger.Infof("[sim] delivery simulator stopped for chat %d/%d", s.key.ChatID, s.key.CounterpartID)
			return
		}
	}
}

// Stop cancels the loop. No message is delivered after Stop returns to a
// conversation whose view has gone away.
func (s *DeliverySimulator) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// Typing reports whether the counterpart currently appears to be typing.
func (s *DeliverySimulator) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.typingUntil)
}

func (s *DeliverySimulator) tick() {
	if s.randFloat() < s.messageProb {
		msg := model.Message{
			ID:        s.now().UnixMilli(),
			Sender:    s.counterpart,
			Content:   followUpPool[s.randIntn(len(followUpPool))],
			CreatedAt: s.now(),
			IsRead:    false,
		}
		s.cache.Append(s.key, msg)
		logger.Infof("[sim] delivered inbound message %d to chat %d/%d", msg.ID, s.key.ChatID, s.key.CounterpartID)
	}

	if s.randFloat() < s.typingProb {
		duration := 2*time.Second + time.Duration(s.randFloat()*3*float64(time.Second))
		s.mu.Lock()
		s.typingUntil = s.now().Add(duration)
		s.mu.Unlock()
	}
}
