package service

import (
	"math/rand"

	"mockchat/model"
	"mockchat/platform"
)

var logger = platform.Logger

// ScriptSelection is the outcome of a template lookup: the base script plus,
// for predefined chats, the latest-message override and extra scripted turns.
type ScriptSelection struct {
	Script      model.ConversationScript
	LastMessage string
	Extra       model.ConversationScript
}

// TemplateStore selects a canned conversation script for a chat id.
type TemplateStore struct{}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{}
}

// ScriptFor returns the script assigned to a chat id. Known demo ids resolve
// to the same template on every call; unknown ids get a uniformly random
// template and no override. The random path is intentionally not stable
// across calls.
func (s *TemplateStore) ScriptFor(chatID int64) ScriptSelection {
	if pre, ok := model.PredefinedConversations[chatID]; ok {
		return ScriptSelection{
			Script:      model.ConversationTemplates[pre.Template],
			LastMessage: pre.LastMessage,
			Extra:       pre.Extra,
		}
	}
	idx := rand.Intn(len(model.ConversationTemplates))
	return ScriptSelection{Script: model.ConversationTemplates[idx]}
}
