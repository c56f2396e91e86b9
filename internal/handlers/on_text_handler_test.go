package handlers

import (
	"testing"

	dg "github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func discordContext(msg *dg.Message) *Context {
	return &Context{
		Service:        Discord,
		DiscordMessage: &dg.MessageCreate{Message: msg},
	}
}

func TestOnTextHandlerParsesDiscordMessage(t *testing.T) {
	next := &recordingHandler{}
	handler := &OnTextHandler{}
	handler.SetNext(next)

	m := discordContext(&dg.Message{
		ID:        "111",
		ChannelID: "222",
		Content:   "Ученика зовут Миша",
	})
	handler.Execute(m)

	require.True(t, next.executed)
	require.Equal(t, "Ученика зовут Миша", m.rawText)
	require.Equal(t, "111", m.id)
	require.Equal(t, "222", m.chatId)
	require.False(t, m.shouldReplyToMessage)
	require.False(t, m.hasVoice)
	require.False(t, m.hasPhoto)
}

func TestOnTextHandlerParsesDiscordReply(t *testing.T) {
	next := &recordingHandler{}
	handler := &OnTextHandler{}
	handler.SetNext(next)

	m := discordContext(&dg.Message{
		ID:                "112",
		ChannelID:         "222",
		Content:           "поправь пункт 5",
		ReferencedMessage: &dg.Message{ID: "100"},
	})
	handler.Execute(m)

	require.True(t, m.shouldReplyToMessage)
	require.Equal(t, "100", m.replyToId)
}

func TestOnTextHandlerDetectsDiscordAttachments(t *testing.T) {
	next := &recordingHandler{}
	handler := &OnTextHandler{}
	handler.SetNext(next)

	m := discordContext(&dg.Message{
		ID:        "113",
		ChannelID: "222",
		Content:   "вот запись",
		Attachments: []*dg.MessageAttachment{
			{ContentType: "audio/ogg", URL: "https://cdn.example/voice.oga"},
		},
	})
	handler.Execute(m)

	require.True(t, m.hasVoice)
	require.Equal(t, "https://cdn.example/voice.oga", m.voiceURL)

	m = discordContext(&dg.Message{
		ID:        "114",
		ChannelID: "222",
		Content:   "экзаменационная работа",
		Attachments: []*dg.MessageAttachment{
			{ContentType: "image/png", URL: "https://cdn.example/work.png"},
		},
	})
	handler.Execute(m)

	require.True(t, m.hasPhoto)
	require.Equal(t, "экзаменационная работа", m.photoCaption)
}
