package service

import (
	"sync"
	"time"

	"mockchat/model"
	"mockchat/platform"
)

// readSweepDelay is how long after opening a chat the inbound history gets
// marked read, mimicking the user glancing over the transcript.
const readSweepDelay = 2 * time.Second

// ChatSession is the server-side stand-in for one mounted chat view. It owns
// the conversation's delivery simulator and the delayed read sweep, and both
// are cancelled when the session closes.
type ChatSession struct {
	Key         model.ConversationKey
	Self        model.Participant
	Counterpart model.Participant

	sim       *DeliverySimulator
	readSweep *time.Timer
	closeOnce sync.Once
}

// Typing reports the counterpart's simulated typing state.
func (s *ChatSession) Typing() bool {
	return s.sim.Typing()
}

// Close tears the session down: the read sweep is cancelled and the simulator
// stops delivering. Closing twice is harmless.
func (s *ChatSession) Close() {
	s.closeOnce.Do(func() {
		s.readSweep.Stop()
		s.sim.Stop()
	})
}

// SessionManager tracks the active chat sessions by conversation key.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[model.ConversationKey]*ChatSession

	cache *ConversationCache
	cfg   platform.Config
}

func NewSessionManager(cache *ConversationCache, cfg platform.Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[model.ConversationKey]*ChatSession),
		cache:    cache,
		cfg:      cfg,
	}
}

// Enter opens a chat: any prior cache entry for the conversation is dropped,
// the transcript is synthesized afresh, the delivery simulator starts, and the
// read sweep is scheduled. Entering a conversation that already has an active
// session replaces it.
func (m *SessionManager) Enter(chatID int64, self, counterpart model.Participant) *ChatSession {
	key := model.ConversationKey{ChatID: chatID, CounterpartID: counterpart.ID}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[key]; ok {
		old.Close()
		delete(m.sessions, key)
	}

	m.cache.Clear(key)
	m.cache.Populate(key, self, counterpart, m.cfg.HistorySize)

	sim := NewDeliverySimulator(m.cache, key, counterpart, m.cfg)
	go sim.Start()

	session := &ChatSession{
		Key:         key,
		Self:        self,
		Counterpart: counterpart,
		sim:         sim,
	}
	session.readSweep = time.AfterFunc(readSweepDelay, func() {
		if n := m.cache.MarkConversationRead(key); n > 0 {
			logger.Infof("[session] marked %d inbound messages read in chat %d/%d", n, key.ChatID, key.CounterpartID)
		}
	})

	m.sessions[key] = session
	logger.Infof("[session] entered chat %d/%d as user %d", key.ChatID, key.CounterpartID, self.ID)
	return session
}

// Leave closes the session for a conversation, if one is active.
func (m *SessionManager) Leave(key model.ConversationKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[key]
	if !ok {
		return false
	}
	session.Close()
	delete(m.sessions, key)
	logger.Infof("[session] left chat %d/%d", key.ChatID, key.CounterpartID)
	return true
}

// Get returns the active session for a conversation key.
func (m *SessionManager) Get(key model.ConversationKey) (*ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[key]
	return session, ok
}

// FindByChatID returns an active session for the chat id when the caller does
// not know the counterpart. With the composite key two sessions can exist for
// one chat id; any of them is returned.
func (m *SessionManager) FindByChatID(chatID int64) (*ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, session := range m.sessions {
		if key.ChatID == chatID {
			return session, true
		}
	}
	return nil, false
}

// Active reports the number of live sessions.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every active session.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, session := range m.sessions {
		session.Close()
		delete(m.sessions, key)
	}
}
