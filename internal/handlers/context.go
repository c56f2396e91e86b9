package handlers

import (
	dg "github.com/bwmarrin/discordgo"
	tele "gopkg.in/telebot.v4"
)

type Service int

const (
	Telegram Service = iota + 1
	Discord
)

func (s Service) String() string {
	switch s {
	case Telegram:
		return "telegram"
	case Discord:
		return "discord"
	}
	return "unknown"
}

type ContextHandler interface {
	Execute(*Context)
	SetNext(ContextHandler)
}

type Action string
type ActionDescription string

const (
	Start       Action = "start"
	Chat        Action = "chat"
	PhotoNote   Action = "photo"
	NextStudent Action = "next"
	Export      Action = "export"
	Clear       Action = "clear"
	History     Action = "history"
	Stats       Action = "stats"
)

// Commands shown in the Telegram menu, in this order.
var VisibleActions = []Action{Start, Clear, History, Export, Stats}

var ActionMap = map[Action]ActionDescription{
	Start:   "Начать новый отчёт",
	Clear:   "Очистить историю диалога",
	History: "Показать состояние истории",
	Export:  "Экспортировать отчёт в Excel",
	Stats:   "График использования бота",
}

type Context struct {
	Service Service
	// The original message without any parsing
	// (except on Telegram events, the possible "@<botname>" is removed)
	rawText string
	// Message without the command itself. For voice messages this is
	// filled with the transcription.
	parsedText string
	id         string // Some services use string, some int, some int64. They're now strings at our context.
	replyToId  string
	// Must store separate from replyToId as
	// replyToId = 0 might refer to first message
	// or to no message at all
	shouldReplyToMessage bool
	chatId               string
	action               Action

	hasVoice     bool
	voiceURL     string
	hasPhoto     bool
	photoCaption string

	doneTyping chan struct{}

	TelebotContext tele.Context
	Telebot        *tele.Bot

	DiscordSession *dg.Session
	DiscordMessage *dg.MessageCreate

	userMessages      int
	assistantMessages int
	historySize       int

	textResponse string
	// A follow-up message sent after textResponse, the report
	// structure reminder rides along here.
	extraTextResponse string
	markdownResponse  bool
	documentPath      string
	documentCaption   string
	finalImagePath    string
}
