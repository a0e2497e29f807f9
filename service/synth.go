package service

import (
	"math/rand"
	"sort"
	"time"

	"mockchat/model"
)

const (
	// spacing between scripted turns
	historyInterval = 10 * time.Minute
	// spacing between extra predefined turns, which sit closer to "now"
	extraInterval = 5 * time.Minute
)

// Synthesizer materializes conversation scripts into concrete message lists.
// It is stateless apart from the clock, which tests swap out.
type Synthesizer struct {
	now func() time.Time
}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{now: time.Now}
}

// Synthesize builds the opening transcript for a conversation: up to maxCount
// scripted turns (oldest kept), any extra predefined turns, and finally the
// latest-message override authored by the counterpart at "now", left unread.
func (s *Synthesizer) Synthesize(sel ScriptSelection, self, counterpart model.Participant, maxCount int) []model.Message {
	now := s.now()
	n := len(sel.Script)
	count := n
	if maxCount < count {
		count = maxCount
	}
	if count < 0 {
		count = 0
	}

	messages := make([]model.Message, 0, count+len(sel.Extra)+1)
	for i := 0; i < count; i++ {
		turn := sel.Script[i]
		messages = append(messages, model.Message{
			ID:        now.UnixMilli() - int64(i),
			Sender:    s.senderFor(turn.Role, self, counterpart),
			Content:   turn.Content,
			CreatedAt: now.Add(-time.Duration(n-i) * historyInterval),
			IsRead:    true,
		})
	}

	if len(sel.Extra) > 0 {
		for i, turn := range sel.Extra {
			sender := s.senderFor(turn.Role, self, counterpart)

			// The override gets appended separately; skip a trailing extra
			// turn that duplicates it.
			isOverrideTail := turn.Content == sel.LastMessage &&
				sender.ID == counterpart.ID &&
				i == len(sel.Extra)-1
			if isOverrideTail && containsContent(messages, turn.Content) {
				continue
			}

			offset := time.Duration(len(sel.Extra)-i)*extraInterval + time.Second
			messages = append(messages, model.Message{
				ID:        now.UnixMilli() - 10000 - int64(i),
				Sender:    sender,
				Content:   turn.Content,
				CreatedAt: now.Add(-offset),
				IsRead:    true,
			})
		}
		sort.SliceStable(messages, func(i, j int) bool {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		})
	}

	if sel.LastMessage != "" && !containsFrom(messages, counterpart.ID, sel.LastMessage) {
		messages = append(messages, model.Message{
			ID:        now.UnixMilli() + 1000,
			Sender:    counterpart,
			Content:   sel.LastMessage,
			CreatedAt: now,
			IsRead:    false,
		})
	}

	// An inbound tail is still waiting for the user's attention.
	if len(messages) > 0 && messages[len(messages)-1].Sender.ID == counterpart.ID {
		messages[len(messages)-1].IsRead = false
	}

	return messages
}

// RandomInbound fabricates a single new message from the given sender, drawn
// from the generic follow-up pool.
func (s *Synthesizer) RandomInbound(sender model.Participant) model.Message {
	now := s.now()
	return model.Message{
		ID:        now.UnixMilli(),
		Sender:    sender,
		Content:   model.RandomMessagePool[rand.Intn(len(model.RandomMessagePool))],
		CreatedAt: now,
		IsRead:    false,
	}
}

func (s *Synthesizer) senderFor(role model.Role, self, counterpart model.Participant) model.Participant {
	if role == model.RoleSelf {
		return self
	}
	return counterpart
}

func containsContent(messages []model.Message, content string) bool {
	for _, m := range messages {
		if m.Content == content {
			return true
		}
	}
	return false
}

func containsFrom(messages []model.Message, senderID int64, content string) bool {
	for _, m := range messages {
		if m.Sender.ID == senderID && m.Content == content {
			return true
		}
	}
	return false
}
