package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockchat/model"
)

func TestScriptForKnownIDIsStable(t *testing.T) {
	store := NewTemplateStore()

	first := store.ScriptFor(1001)
	second := store.ScriptFor(1001)

	require.NotEmpty(t, first.Script)
	assert.Equal(t, first.Script, second.Script)
	assert.Equal(t, model.ConversationTemplates[0], first.Script)
	assert.Equal(t, "你的設計稿我看過了，非常棒！想約個時間討論細節。", first.LastMessage)
	assert.Len(t, first.Extra, 8)
}

func TestScriptForAllPredefinedIDs(t *testing.T) {
	store := NewTemplateStore()

	for chatID, pre := range model.PredefinedConversations {
		sel := store.ScriptFor(chatID)
		require.NotEmpty(t, sel.Script, "chat %d", chatID)
		assert.Equal(t, model.ConversationTemplates[pre.Template], sel.Script, "chat %d", chatID)
		assert.Equal(t, pre.LastMessage, sel.LastMessage, "chat %d", chatID)
	}
}

func TestScriptForUnknownIDFallsBackToCatalog(t *testing.T) {
	store := NewTemplateStore()

	for i := 0; i < 20; i++ {
		sel := store.ScriptFor(42)
		require.NotEmpty(t, sel.Script)
		assert.Empty(t, sel.LastMessage)
		assert.Empty(t, sel.Extra)
		assert.Contains(t, model.ConversationTemplates, sel.Script)
	}
}

func TestPredefinedTemplateIndexesInRange(t *testing.T) {
	for chatID, pre := range model.PredefinedConversations {
		assert.GreaterOrEqual(t, pre.Template, 0, "chat %d", chatID)
		assert.Less(t, pre.Template, len(model.ConversationTemplates), "chat %d", chatID)
	}
}
