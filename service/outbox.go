package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"mockchat/model"
	"mockchat/platform"
)

// ErrSendFailed is the simulated rejection of an outgoing message. The
// optimistic copy has already been rolled back when this is returned; the
// client is expected to offer a retry.
var ErrSendFailed = errors.New("simulated send failure")

// SendState tracks one outgoing message through the optimistic-send state
// machine.
type SendState int

const (
	SendPending SendState = iota
	SendConfirmed
	SendRolledBack
)

func (s SendState) String() string {
	switch s {
	case SendPending:
		return "pending"
	case SendConfirmed:
		return "confirmed"
	case SendRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Outbox performs optimistic sends: the message lands in the cache
// immediately, then after a simulated network delay it is either confirmed or
// removed again. A send cannot be cancelled once issued; context expiry only
// stops the wait, the outcome still resolves.
type Outbox struct {
	cache *ConversationCache

	failProb float64
	delayMin time.Duration
	delayMax time.Duration

	randFloat func() float64
	now       func() time.Time

	mu     sync.Mutex
	states map[int64]SendState
}

func NewOutbox(cache *ConversationCache, cfg platform.Config) *Outbox {
	return &Outbox{
		cache:     cache,
		failProb:  cfg.SendFailProb,
		delayMin:  cfg.SendDelayMin,
		delayMax:  cfg.SendDelayMax,
		randFloat: rand.Float64,
		now:       time.Now,
		states:    make(map[int64]SendState),
	}
}

// Send appends an optimistic text message for self and resolves it after the
// simulated delay. On the simulated failure path the message is removed from
// the cache and ErrSendFailed is returned.
func (o *Outbox) Send(ctx context.Context, key model.ConversationKey, self model.Participant, content string) (model.Message, error) {
	msg := model.Message{
		ID:        o.now().UnixMilli(),
		Sender:    self,
		Content:   content,
		CreatedAt: o.now(),
		IsRead:    false,
	}
	return o.deliver(ctx, key, msg)
}

// SendImage appends an optimistic image message referencing a local URI.
func (o *Outbox) SendImage(ctx context.Context, key model.ConversationKey, self model.Participant, localURI string) (model.Message, error) {
	msg := model.Message{
		ID:        o.now().UnixMilli(),
		Sender:    self,
		CreatedAt: o.now(),
		IsRead:    false,
		Attachment: &model.Attachment{
			Type: model.AttachmentImage,
			URL:  localURI,
		},
	}
	return o.deliver(ctx, key, msg)
}

// State reports where a message is in the send state machine.
func (o *Outbox) State(messageID int64) (SendState, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	state, ok := o.states[messageID]
	return state, ok
}

func (o *Outbox) deliver(ctx context.Context, key model.ConversationKey, msg model.Message) (model.Message, error) {
	o.cache.Append(key, msg)
	o.setState(msg.ID, SendPending)

	delay := o.delayMin
	if o.delayMax > o.delayMin {
		delay += time.Duration(o.randFloat() * float64(o.delayMax-o.delayMin))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		// sends are not cancellable; resolve immediately instead of waiting
	}

	if o.randFloat() < o.failProb {
		o.cache.Remove(key, msg.ID)
		o.setState(msg.ID, SendRolledBack)
		logger.Warnf("[outbox] send %d to chat %d/%d failed, rolled back", msg.ID, key.ChatID, key.CounterpartID)
		return model.Message{}, ErrSendFailed
	}

	o.setState(msg.ID, SendConfirmed)
	logger.Infof("[outbox] send %d to chat %d/%d confirmed", msg.ID, key.ChatID, key.CounterpartID)
	return msg, nil
}

func (o *Outbox) setState(messageID int64, state SendState) {
	o.mu.Lock()
	o.states[messageID] = state
	o.mu.Unlock()
}
