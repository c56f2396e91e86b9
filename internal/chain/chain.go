package chain

import (
	"github.com/logoscenter/logos-bot/internal/handlers"
)

type HandlerChain struct {
	rootParser handlers.ContextHandler
}

func NewChainOfResponsibility() *HandlerChain {
	onTextHandler := &handlers.OnTextHandler{}

	genericMessageHandler := &handlers.GenericMessageHandler{}

	typingHandler := &handlers.TypingHandler{}

	transcriptionHandler := &handlers.TranscriptionHandler{}
	photoNoteHandler := &handlers.PhotoNoteHandler{}
	historyCommandHandler := &handlers.HistoryCommandHandler{}

	llmResponseHandler := &handlers.LLMResponseHandler{}
	exportHandler := &handlers.ExportHandler{}
	statsHandler := &handlers.StatsHandler{}

	constructTextResponseHandler := &handlers.ConstructTextResponseHandler{}

	textResponseHandler := &handlers.TextResponseHandler{}
	documentResponseHandler := &handlers.DocumentResponseHandler{}
	imageResponseHandler := &handlers.ImageResponseHandler{}

	endOfChainHandler := &handlers.EndOfChainHandler{}

	onTextHandler.SetNext(genericMessageHandler)
	genericMessageHandler.SetNext(typingHandler)

	typingHandler.SetNext(transcriptionHandler)

	transcriptionHandler.SetNext(photoNoteHandler)
	photoNoteHandler.SetNext(historyCommandHandler)
	historyCommandHandler.SetNext(llmResponseHandler)

	llmResponseHandler.SetNext(exportHandler)
	exportHandler.SetNext(statsHandler)
	statsHandler.SetNext(constructTextResponseHandler)

	constructTextResponseHandler.SetNext(textResponseHandler)
	textResponseHandler.SetNext(documentResponseHandler)
	documentResponseHandler.SetNext(imageResponseHandler)

	imageResponseHandler.SetNext(endOfChainHandler)

	return &HandlerChain{
		rootParser: onTextHandler,
	}
}

func (h *HandlerChain) Process(msg *handlers.Context) {
	h.rootParser.Execute(msg)
}
