package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mockchat/model"
	"mockchat/platform"
	"mockchat/service"
)

// ChatController serves the private-messages surface the mobile client
// expects, backed entirely by the mock conversation engine.
type ChatController struct{}

// Deps wires the controller to the engine built in main.
type Deps struct {
	Cache     *service.ConversationCache
	Sessions  *service.SessionManager
	Outbox    *service.Outbox
	Directory *service.Directory
	Config    platform.Config
}

var deps Deps

// Setup must be called once before the routes are registered.
func Setup(d Deps) {
	deps = d
}

// ListChats GET /chats/
func (ch ChatController) ListChats(c *gin.Context) {
	self := selfFrom(c)
	c.JSON(http.StatusOK, deps.Directory.Chats(self))
}

// OpenChat POST /chats/
func (ch ChatController) OpenChat(c *gin.Context) {
	var input struct {
		ParticipantID int64  `json:"participant_id" binding:"required"`
		Username      string `json:"username"`
		Avatar        string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	counterpart := counterpartByID(input.ParticipantID, input.Username, input.Avatar)
	chat := deps.Directory.OpenChat(selfFrom(c), counterpart)
	c.JSON(http.StatusCreated, chat)
}

// EnterChat POST /chats/:chatId/enter/
// Mirrors the chat view mounting: fresh synthesis and simulator start.
func (ch ChatController) EnterChat(c *gin.Context) {
	chatID, err := chatIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	var input struct {
		CounterpartID     int64  `json:"counterpart_id"`
		CounterpartName   string `json:"counterpart_name"`
		CounterpartAvatar string `json:"counterpart_avatar"`
	}
	// body is optional for seeded chats
	_ = c.ShouldBindJSON(&input)

	counterpart, err := resolveCounterpart(chatID, input.CounterpartID, input.CounterpartName, input.CounterpartAvatar)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := deps.Sessions.Enter(chatID, selfFrom(c), counterpart)
	logger.Infof("[%s] Entered chat %d with counterpart %d", c.GetString("requestId"), chatID, counterpart.ID)
	c.JSON(http.StatusOK, gin.H{
		"chat_id":     chatID,
		"counterpart": session.Counterpart,
		"messages":    deps.Cache.Get(session.Key),
	})
}

// LeaveChat POST /chats/:chatId/leave/
// Mirrors the chat view unmounting: the simulator must stop.
func (ch ChatController) LeaveChat(c *gin.Context) {
	chatID, err := chatIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	key, ok := resolveKey(c, chatID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active chat session"})
		return
	}

	if !deps.Sessions.Leave(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active chat session"})
		return
	}
	logger.Infof("[%s] Left chat %d", c.GetString("requestId"), chatID)
	c.JSON(http.StatusOK, gin.H{"message": "Chat session closed"})
}

// GetMessages GET /chats/:chatId/messages/
func (ch ChatController) GetMessages(c *gin.Context) {
	chatID, err := chatIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	key, ok := resolveKey(c, chatID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown chat, supply counterpart_id"})
		return
	}

	// Reading a chat without a mounted view still yields a transcript, but
	// without delivery simulation.
	counterpart := counterpartByID(key.CounterpartID, "", "")
	messages := deps.Cache.Populate(key, selfFrom(c), counterpart, deps.Config.HistorySize)
	c.JSON(http.StatusOK, messages)
}

// PostMessage POST /chats/:chatId/messages/
func (ch ChatController) PostMessage(c *gin.Context) {
	chatID, err := chatIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	var input struct {
		Content       string `json:"content"`
		AttachmentURL string `json:"attachment_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || (input.Content == "" && input.AttachmentURL == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	key, ok := resolveKey(c, chatID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown chat, supply counterpart_id"})
		return
	}

	self := selfFrom(c)
	var msg model.Message
	if input.AttachmentURL != "" {
		msg, err = deps.Outbox.SendImage(c.Request.Context(), key, self, input.AttachmentURL)
	} else {
		msg, err = deps.Outbox.Send(c.Request.Context(), key, self, input.Content)
	}
	if errors.Is(err, service.ErrSendFailed) {
		logger.Warnf("[%s] Send to chat %d failed, rolled back", c.GetString("requestId"), chatID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message", "retry": true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// Typing GET /chats/:chatId/typing/
func (ch ChatController) Typing(c *gin.Context) {
	chatID, err := chatIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	session, ok := deps.Sessions.FindByChatID(chatID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"typing": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"typing": session.Typing()})
}

// MarkRead PATCH /messages/:messageId/
func (ch ChatController) MarkRead(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	var input struct {
		IsRead *bool `json:"is_read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	// read state never reverses
	if input.IsRead == nil || !*input.IsRead {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages cannot be marked unread"})
		return
	}

	if !deps.Cache.MarkMessageRead(messageID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": messageID, "is_read": true})
}

func chatIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("chatId"), 10, 64)
}

// resolveKey finds the conversation key for a chat id: an explicit
// counterpart_id query wins, then the active session, then the directory
// seed.
func resolveKey(c *gin.Context, chatID int64) (model.ConversationKey, bool) {
	if raw := c.Query("counterpart_id"); raw != "" {
		if counterpartID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return model.ConversationKey{ChatID: chatID, CounterpartID: counterpartID}, true
		}
	}
	if session, ok := deps.Sessions.FindByChatID(chatID); ok {
		return session.Key, true
	}
	if seed, ok := model.SeedByChatID(chatID); ok {
		return model.ConversationKey{ChatID: chatID, CounterpartID: seed.Counterpart.ID}, true
	}
	return model.ConversationKey{}, false
}

// resolveCounterpart builds the counterpart participant for entering a chat.
func resolveCounterpart(chatID, counterpartID int64, name, avatar string) (model.Participant, error) {
	if counterpartID != 0 {
		return counterpartByID(counterpartID, name, avatar), nil
	}
	if seed, ok := model.SeedByChatID(chatID); ok {
		return seed.Counterpart, nil
	}
	return model.Participant{}, fmt.Errorf("unknown chat %d, supply counterpart_id", chatID)
}

// counterpartByID prefers the seeded identity; unknown counterparts get a
// placeholder display name.
func counterpartByID(id int64, name, avatar string) model.Participant {
	for _, seed := range model.DirectorySeeds {
		if seed.Counterpart.ID == id {
			return seed.Counterpart
		}
	}
	if name == "" {
		name = fmt.Sprintf("用戶%d", id)
	}
	return model.Participant{ID: id, Username: name, Avatar: avatar}
}
