package handlers

import (
	"fmt"
	"log/slog"
)

const startGreetingText = "👋 Привет! Я ИИ-ассистент преподавателей образовательного центра «Логос».\n\n" +
	"📝 Я помогу вам составить структурированный отчёт для родителей.\n\n" +
	"🎤 **Чтобы сделать отчет, запишите голосовым сообщением ваше впечатление о работе ученика по следующим пунктам.**\n"

const startStructureText = "📋 **Структура отчёта (8 пунктов):**\n\n" +
	"**1. Работа ученика на занятиях.** Общее впечатление за месяц " +
	"(вовлеченность в процесс занятия, каким образом проявлял активность за месяц)\n\n" +
	"**2. Работа с домашними заданиями** (впечатление от качества выполнения домашних заданий за месяц)\n\n" +
	"**3. Комментарий к экзаменационной работе**\n\n" +
	"**4. Ожидаемый результат на этот месяц**\n\n" +
	"**5. Причины отсутствия прироста и неудовлетворительного результата**\n\n" +
	"**6. Рекомендации на будущий месяц ребёнку**\n\n" +
	"**7. Рекомендации родителям**\n\n" +
	"**8. Дополнительные комментарии**\n\n" +
	"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
	"⚠️ **Важно:**\n" +
	"• Обязательно скажите, **про кого идет речь** и **какой месяц**.\n" +
	"• Отчёт получится лучше, если будете записывать **с экзаменационной работой на руках**.\n" +
	"• Старайтесь рассказывать подробно **в баллах** и **в номерах заданий** — обязательно упомяните."

const nextStudentStructureText = "📋 **Структура отчёта (8 пунктов):**\n\n" +
	"1. Работа ученика на занятиях\n" +
	"2. Работа с домашними заданиями\n" +
	"3. Комментарий к экзаменационной работе\n" +
	"4. Ожидаемый результат на этот месяц\n" +
	"5. Причины отсутствия прироста\n" +
	"6. Рекомендации ребёнку\n" +
	"7. Рекомендации родителям\n" +
	"8. Дополнительные комментарии\n\n" +
	"━━━━━━━━━━━━━━━━━━━━━━━━\n\n" +
	"💬 **Какой месяц отчёта?**\n" +
	"💬 **Как зовут ученика?**"

type ConstructTextResponseHandler struct {
	next ContextHandler
}

func (r *ConstructTextResponseHandler) Execute(m *Context) {
	slog.Debug("Entering ConstructTextResponseHandler")

	var responseText string
	switch m.action {
	case Start:
		responseText = startGreetingText
		m.extraTextResponse = startStructureText
		m.markdownResponse = true
	case NextStudent:
		responseText = "✅ Переходим к следующему ученику!\n\n" +
			"История предыдущего отчёта очищена."
		m.extraTextResponse = nextStudentStructureText
		m.markdownResponse = true
	case Clear:
		responseText = "🗑️ История диалога очищена!\n\n" +
			"Начинаем разговор с чистого листа."
	case History:
		if m.historySize == 0 {
			responseText = "📭 История диалога пуста."
		} else {
			responseText = fmt.Sprintf(
				"📊 История диалога:\n\n"+
					"💬 Ваших сообщений: %d\n"+
					"🤖 Ответов бота: %d\n"+
					"📝 Всего в контексте: %d сообщений",
				m.userMessages, m.assistantMessages, m.historySize)
		}
	}

	// Earlier handlers may have already produced a response.
	if responseText != "" {
		m.textResponse = responseText
	}
	r.next.Execute(m)
}

func (u *ConstructTextResponseHandler) SetNext(next ContextHandler) {
	u.next = next
}
