package service

import (
	"sync"

	"mockchat/model"
)

// ConversationCache is the single in-process source of truth for conversation
// transcripts while a chat is active. Entries live until explicitly cleared;
// there is no eviction and nothing is persisted.
//
// Appends preserve call order, not timestamp order. Callers are responsible
// for appending in a chronologically sensible sequence.
type ConversationCache struct {
	mu            sync.RWMutex
	conversations map[model.ConversationKey][]model.Message

	store *TemplateStore
	synth *Synthesizer
}

func NewConversationCache(store *TemplateStore, synth *Synthesizer) *ConversationCache {
	return &ConversationCache{
		conversations: make(map[model.ConversationKey][]model.Message),
		store:         store,
		synth:         synth,
	}
}

// Populate fills the entry for key by synthesizing the conversation's script,
// unless the entry already exists, in which case the existing messages are
// returned untouched. Re-renders of the same chat view must not duplicate the
// transcript.
func (c *ConversationCache) Populate(key model.ConversationKey, self, counterpart model.Participant, maxCount int) []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.conversations[key]; ok && len(existing) > 0 {
		return copyMessages(existing)
	}

	sel := c.store.ScriptFor(key.ChatID)
	messages := c.synth.Synthesize(sel, self, counterpart, maxCount)
	c.conversations[key] = messages
	logger.Infof("[cache] populated chat %d/%d with %d messages", key.ChatID, key.CounterpartID, len(messages))
	return copyMessages(messages)
}

// Append adds a message to the end of the entry, creating it if absent.
func (c *ConversationCache) Append(key model.ConversationKey, msg model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conversations[key] = append(c.conversations[key], msg)
}

// Get returns a copy of the entry's messages, empty when absent.
func (c *ConversationCache) Get(key model.ConversationKey) []model.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyMessages(c.conversations[key])
}

// Remove deletes a single message, used to roll back a failed optimistic send.
func (c *ConversationCache) Remove(key model.ConversationKey, messageID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.conversations[key]
	for i, m := range msgs {
		if m.ID == messageID {
			c.conversations[key] = append(msgs[:i], msgs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops the entry entirely so the next Populate synthesizes afresh.
func (c *ConversationCache) Clear(key model.ConversationKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.conversations[key]; ok {
		delete(c.conversations, key)
		logger.Infof("[cache] cleared chat %d/%d", key.ChatID, key.CounterpartID)
	}
}

// MarkRead flips one message to read. Read state never reverses.
func (c *ConversationCache) MarkRead(key model.ConversationKey, messageID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.conversations[key]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].IsRead = true
			return true
		}
	}
	return false
}

// MarkMessageRead flips one message to read given only its id, scanning all
// conversations. Fine at mock scale.
func (c *ConversationCache) MarkMessageRead(messageID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, msgs := range c.conversations {
		for i := range msgs {
			if msgs[i].ID == messageID {
				msgs[i].IsRead = true
				return true
			}
		}
	}
	return false
}

// MarkConversationRead marks every counterpart-authored message in the entry
// as read and reports how many changed.
func (c *ConversationCache) MarkConversationRead(key model.ConversationKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.conversations[key]
	changed := 0
	for i := range msgs {
		if msgs[i].Sender.ID == key.CounterpartID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			changed++
		}
	}
	return changed
}

// UnreadCount counts counterpart-authored unread messages in the entry.
func (c *ConversationCache) UnreadCount(key model.ConversationKey) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, m := range c.conversations[key] {
		if m.Sender.ID == key.CounterpartID && !m.IsRead {
			count++
		}
	}
	return count
}

// Stats reports entry and message totals for the periodic diagnostics log.
func (c *ConversationCache) Stats() (conversations int, messages int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, msgs := range c.conversations {
		messages += len(msgs)
	}
	return len(c.conversations), messages
}

func copyMessages(msgs []model.Message) []model.Message {
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}
