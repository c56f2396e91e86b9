package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func runConstruct(t *testing.T, m *Context) {
	t.Helper()
	next := &recordingHandler{}
	handler := &ConstructTextResponseHandler{}
	handler.SetNext(next)
	handler.Execute(m)
	require.True(t, next.executed)
}

func TestConstructStartResponse(t *testing.T) {
	m := &Context{action: Start}
	runConstruct(t, m)

	require.Contains(t, m.textResponse, "Я ИИ-ассистент преподавателей")
	require.Contains(t, m.extraTextResponse, "Структура отчёта (8 пунктов)")
	require.Contains(t, m.extraTextResponse, "8. Дополнительные комментарии")
	require.True(t, m.markdownResponse)
}

func TestConstructNextStudentResponse(t *testing.T) {
	m := &Context{action: NextStudent}
	runConstruct(t, m)

	require.Contains(t, m.textResponse, "Переходим к следующему ученику")
	require.Contains(t, m.extraTextResponse, "Как зовут ученика?")
	require.True(t, m.markdownResponse)
}

func TestConstructClearResponse(t *testing.T) {
	m := &Context{action: Clear}
	runConstruct(t, m)

	require.Contains(t, m.textResponse, "История диалога очищена")
	require.Empty(t, m.extraTextResponse)
	require.False(t, m.markdownResponse)
}

func TestConstructHistoryResponse(t *testing.T) {
	m := &Context{action: History, userMessages: 3, assistantMessages: 2, historySize: 5}
	runConstruct(t, m)

	require.Contains(t, m.textResponse, "Ваших сообщений: 3")
	require.Contains(t, m.textResponse, "Ответов бота: 2")
	require.Contains(t, m.textResponse, "Всего в контексте: 5 сообщений")
}

func TestConstructHistoryEmptyResponse(t *testing.T) {
	m := &Context{action: History}
	runConstruct(t, m)

	require.Equal(t, "📭 История диалога пуста.", m.textResponse)
}

func TestConstructKeepsEarlierResponse(t *testing.T) {
	m := &Context{action: Chat, textResponse: "Ответ ассистента."}
	runConstruct(t, m)

	require.Equal(t, "Ответ ассистента.", m.textResponse)
}

func TestConstructKeepsExportErrorText(t *testing.T) {
	m := &Context{action: Export, textResponse: emptyHistoryText}
	runConstruct(t, m)

	require.Equal(t, emptyHistoryText, m.textResponse)
}
