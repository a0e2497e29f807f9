package model

// Role marks which side of the conversation authored a scripted turn.
type Role string

const (
	RoleSelf        Role = "self"
	RoleCounterpart Role = "counterpart"
)

// Turn is one scripted line of a canned conversation.
type Turn struct {
	Role    Role
	Content string
}

// ConversationScript is an ordered canned transcript, oldest turn first.
type ConversationScript []Turn

// ConversationTemplates is the fixed catalog of canned scripts. Indexes are
// referenced by PredefinedConversations and must stay stable.
var ConversationTemplates = []ConversationScript{
	// 0: React Native recruiting
	{
		{RoleCounterpart, "你好，聽說你在找React Native開發者？"},
		{RoleSelf, "是的，我們團隊正在開發一個跨平台應用"},
		{RoleCounterpart, "太好了，我有3年RN經驗。你們的項目用了哪些主要技術棧？"},
		{RoleSelf, "我們使用TypeScript、Redux和Styled Components"},
		{RoleCounterpart, "很適合我，我之前的項目也是用這些技術"},
		{RoleSelf, "太棒了！你有時間討論一下細節嗎？"},
		{RoleCounterpart, "當然，我們可以安排視訊會議"},
	},
	// 1: UI design
	{
		{RoleCounterpart, "嗨，看到你分享的UI設計很棒！"},
		{RoleSelf, "謝謝！那是我最近的一個作品"},
		{RoleCounterpart, "你用什麼工具做設計？Figma？"},
		{RoleSelf, "對，主要用Figma，有時候也用Sketch"},
		{RoleCounterpart, "我正在尋找一個設計師合作開發一個金融App"},
		{RoleSelf, "聽起來很有趣，可以分享更多細節嗎？"},
		{RoleCounterpart, "當然，這是針對年輕投資者的理財應用..."},
	},
	// 2: backend
	{
		{RoleCounterpart, "你好，看到你在技術論壇分享的Node.js優化經驗很棒"},
		{RoleSelf, "謝謝！那是我們團隊最近處理高流量API的實踐"},
		{RoleCounterpart, "我們正面臨類似問題，特別是數據庫查詢優化方面"},
		{RoleSelf, "MongoDB還是MySQL？不同數據庫優化方向差很多"},
		{RoleCounterpart, "我們用的是PostgreSQL，主要是復雜查詢效能問題"},
		{RoleSelf, "PostgreSQL是個好選擇，我可以分享一些查詢優化的經驗"},
		{RoleCounterpart, "太感謝了，這正是我們需要的！"},
	},
	// 3: career
	{
		{RoleCounterpart, "你好，看到你在LinkedIn上的資料，我們公司正在招資深前端工程師"},
		{RoleSelf, "你好，感謝關注。我對新機會持開放態度"},
		{RoleCounterpart, "我們是一家健康科技新創，正在開發用戶分析平台"},
		{RoleSelf, "聽起來很有挑戰性，你們的技術方向是？"},
		{RoleCounterpart, "主要是React生態系，後端是Node.js和GraphQL"},
		{RoleSelf, "正好是我的專長領域，可以分享更多職位細節嗎？"},
		{RoleCounterpart, "當然，我會發職位說明給你，什麼時間方便面談？"},
	},
}

// PredefinedConversation pins a known chat id to a template, a latest-message
// override, and optionally extra scripted turns inserted before the override.
type PredefinedConversation struct {
	Template    int
	LastMessage string
	Extra       ConversationScript
}

// PredefinedConversations maps demo chat ids to their fixed transcripts so the
// same chat always opens with the same content across runs.
var PredefinedConversations = map[int64]PredefinedConversation{
	1001: {
		Template:    0,
		LastMessage: "你的設計稿我看過了，非常棒！想約個時間討論細節。",
		Extra: ConversationScript{
			{RoleCounterpart, "嗨，我是設計師小明"},
			{RoleSelf, "你好小明，很高興認識你"},
			{RoleCounterpart, "我們團隊最近需要UI/UX設計師"},
			{RoleSelf, "正好，我最近完成了幾個設計項目"},
			{RoleCounterpart, "太好了，你能分享一下你的作品集嗎？"},
			{RoleSelf, "當然，我已經發了連結給你"},
			{RoleCounterpart, "收到了，我會盡快查看"},
			{RoleCounterpart, "你的設計稿我看過了，非常棒！想約個時間討論細節。"},
		},
	},
	1002: {
		Template:    2,
		LastMessage: "我剛解決了那個 bug，程式碼已經推到 GitHub 上了",
		Extra: ConversationScript{
			{RoleCounterpart, "我們應用中的搜索功能有些問題"},
			{RoleSelf, "是查詢效能問題嗎？"},
			{RoleCounterpart, "對，特別是在大數據量時"},
		},
	},
	1003: {
		Template:    3,
		LastMessage: "下週一要開 sprint planning，你有時間參加嗎？",
		Extra: ConversationScript{
			{RoleCounterpart, "我們需要討論下一個迭代的功能優先級"},
			{RoleSelf, "好的，我已經準備好了需求列表"},
		},
	},
	1004: {
		Template:    0,
		LastMessage: "React 18 的 concurrent mode 真的很強大，你看了嗎？",
		Extra: ConversationScript{
			{RoleCounterpart, "嘿，你有關注最新的React更新嗎？"},
			{RoleSelf, "有的，但還沒機會深入研究"},
		},
	},
	1005: {Template: 2, LastMessage: "資料庫優化完成了，查詢速度提升了 50%"},
	1006: {Template: 1, LastMessage: "新的組件設計已經上傳到 Figma，你有空看一下嗎？"},
	1007: {Template: 2, LastMessage: "我們需要更新授權邏輯，有發現一些潛在的安全問題"},
	1008: {Template: 2, LastMessage: "CI/CD pipeline已經設置好了，現在每次提交都會自動部署"},
	1009: {Template: 2, LastMessage: "用戶行為分析報告已經完成，發現了一些有趣的使用模式"},
	1010: {Template: 3, LastMessage: "下週要開技術評審會議，請準備好你負責的部分"},
	1011: {Template: 0, LastMessage: "最新版本的測試已完成，發現了幾個邊界條件的問題"},
	1012: {Template: 3, LastMessage: "你的創業計畫書很有潛力，我們可以約時間詳談"},
}

// RandomMessagePool feeds one-off inbound messages that are not tied to any
// template, e.g. when a counterpart "sends" something new.
var RandomMessagePool = []string{
	"你最近在忙什麼項目？",
	"我剛看了你的作品集，非常不錯！",
	"有沒有興趣參與一個開源項目？",
	"下週有技術研討會，你有興趣參加嗎？",
	"你用過最新版的React了嗎？效能提升很明顯",
	"推薦一個設計工具給你，最近發現很好用",
	"有沒有推薦的技術學習資源？",
	"我們可以討論一下這個技術方案嗎？",
}
