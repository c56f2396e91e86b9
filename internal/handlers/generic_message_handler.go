package handlers

import (
	"fmt"
	"log/slog"
	"strings"
)

type GenericMessageHandler struct {
	next ContextHandler
}

func (mp *GenericMessageHandler) Execute(m *Context) {
	slog.Debug("Entering GenericMessageHandler")

	switch {
	case m.rawText == NextStudentButton:
		m.action = NextStudent
	case m.rawText == ExportButton:
		m.action = Export
	case strings.HasPrefix(m.rawText, "/"):
		textNoPrefix := strings.TrimPrefix(m.rawText, "/")
		extractedAction := strings.Split(textNoPrefix, " ")[0]

		switch Action(extractedAction) {
		case Start:
			m.action = Start
		case Clear:
			m.action = Clear
		case History:
			m.action = History
		case Export:
			m.action = Export
		case Stats:
			m.action = Stats
		default:
			// Unknown commands go to the assistant as plain text.
			m.action = Chat
			m.parsedText = m.rawText
		}

		if m.action != Chat {
			m.parsedText = strings.TrimSpace(strings.Replace(textNoPrefix, extractedAction, "", 1))
		}
	case m.hasPhoto:
		m.action = PhotoNote
	case m.hasVoice:
		m.action = Chat
	case strings.TrimSpace(m.rawText) != "":
		m.action = Chat
		m.parsedText = m.rawText
	}

	if m.action != "" {
		slog.Info(fmt.Sprintf("Action '%s' resolved", m.action))
	}

	mp.next.Execute(m)
}

func (mp *GenericMessageHandler) SetNext(next ContextHandler) {
	mp.next = next
}
