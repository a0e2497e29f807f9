package model

import "time"

// ChatSeed is the static directory entry for one demo conversation: who the
// counterpart is, how stale the preview should look, and how many unread
// messages the chat list badge shows before the chat is opened.
type ChatSeed struct {
	ChatID      int64
	Counterpart Participant
	Age         time.Duration
	Unread      int
}

const day = 24 * time.Hour

// DirectorySeeds lists the demo conversations in chat-list order, newest
// first. Chat ids line up with PredefinedConversations; the preview line is
// the conversation's LastMessage override.
var DirectorySeeds = []ChatSeed{
	{1001, Participant{ID: 999, Username: "設計師小明", Avatar: "https://i.pravatar.cc/150?img=33"}, 0, 3},
	{1002, Participant{ID: 998, Username: "工程師大方", Avatar: "https://i.pravatar.cc/150?img=58"}, 2 * time.Hour, 0},
	{1003, Participant{ID: 997, Username: "產品經理小華", Avatar: "https://i.pravatar.cc/150?img=41"}, 1 * day, 0},
	{1004, Participant{ID: 996, Username: "前端大神小玉", Avatar: "https://i.pravatar.cc/150?img=47"}, 3 * day, 1},
	{1005, Participant{ID: 995, Username: "後端專家阿強", Avatar: "https://i.pravatar.cc/150?img=60"}, 5 * day, 0},
	{1006, Participant{ID: 994, Username: "UI設計師阿良", Avatar: "https://i.pravatar.cc/150?img=12"}, 6 * day, 0},
	{1007, Participant{ID: 993, Username: "資安專家小安", Avatar: "https://i.pravatar.cc/150?img=15"}, 7 * day, 0},
	{1008, Participant{ID: 992, Username: "DevOps工程師大雄", Avatar: "https://i.pravatar.cc/150?img=22"}, 8 * day, 0},
	{1009, Participant{ID: 991, Username: "數據分析師靜香", Avatar: "https://i.pravatar.cc/150?img=25"}, 9 * day, 0},
	{1010, Participant{ID: 990, Username: "技術總監胖虎", Avatar: "https://i.pravatar.cc/150?img=28"}, 10 * day, 0},
	{1011, Participant{ID: 989, Username: "QA測試工程師小夢", Avatar: "https://i.pravatar.cc/150?img=29"}, 11 * day, 2},
	{1012, Participant{ID: 988, Username: "創業投資人小李", Avatar: "https://i.pravatar.cc/150?img=32"}, 12 * day, 0},
}

// SeedByChatID returns the static directory entry for a chat id.
func SeedByChatID(chatID int64) (ChatSeed, bool) {
	for _, s := range DirectorySeeds {
		if s.ChatID == chatID {
			return s, true
		}
	}
	return ChatSeed{}, false
}
