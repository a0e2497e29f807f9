package service

import (
	"time"

	"mockchat/model"
)

// Directory serves the chat-list view. Entries come from the static demo
// seeds; once a conversation has live cache state, its preview and unread
// badge reflect the cache instead of the seed.
type Directory struct {
	cache *ConversationCache
	now   func() time.Time
}

func NewDirectory(cache *ConversationCache) *Directory {
	return &Directory{cache: cache, now: time.Now}
}

// Chats returns the conversation list for self, newest first.
func (d *Directory) Chats(self model.Participant) []model.Chat {
	now := d.now()
	chats := make([]model.Chat, 0, len(model.DirectorySeeds))
	for _, seed := range model.DirectorySeeds {
		chat := model.Chat{
			ID:           seed.ChatID,
			Participants: []model.Participant{seed.Counterpart, self},
		}

		key := model.ConversationKey{ChatID: seed.ChatID, CounterpartID: seed.Counterpart.ID}
		if msgs := d.cache.Get(key); len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			chat.LastMessage = &model.LastMessage{
				Content:   last.Content,
				CreatedAt: last.CreatedAt,
				IsRead:    last.IsRead,
			}
			chat.UpdatedAt = last.CreatedAt
			chat.UnreadCount = d.cache.UnreadCount(key)
		} else {
			updated := now.Add(-seed.Age)
			pre := model.PredefinedConversations[seed.ChatID]
			chat.LastMessage = &model.LastMessage{
				Content:   pre.LastMessage,
				CreatedAt: updated,
				IsRead:    seed.Unread == 0,
			}
			chat.UpdatedAt = updated
			chat.UnreadCount = seed.Unread
		}

		chats = append(chats, chat)
	}
	return chats
}

// OpenChat resolves or creates the chat for a counterpart. Seeded
// counterparts keep their fixed chat id; anyone else gets a fresh
// timestamp-derived id, which makes the conversation take the random-template
// path when entered.
func (d *Directory) OpenChat(self, counterpart model.Participant) model.Chat {
	for _, seed := range model.DirectorySeeds {
		if seed.Counterpart.ID == counterpart.ID {
			return model.Chat{
				ID:           seed.ChatID,
				Participants: []model.Participant{seed.Counterpart, self},
				UpdatedAt:    d.now().Add(-seed.Age),
				UnreadCount:  seed.Unread,
			}
		}
	}
	return model.Chat{
		ID:           d.now().UnixMilli(),
		Participants: []model.Participant{counterpart, self},
		UpdatedAt:    d.now(),
	}
}
