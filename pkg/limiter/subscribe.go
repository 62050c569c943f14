package limiter

import (
	"github.com/kcaldas/tabslimiter/pkg/events"
	"github.com/kcaldas/tabslimiter/pkg/host"
)

// Subscribe registers the engine's handlers for every document lifecycle
// topic.
func (e *Engine) Subscribe(sub events.Subscriber) {
	sub.Subscribe(events.TopicDocumentCreated, documentHandler(func(d host.Document) { e.OnCreated(d) }))
	sub.Subscribe(events.TopicDocumentLoaded, documentHandler(func(d host.Document) { e.OnLoaded(d) }))
	sub.Subscribe(events.TopicDocumentActivated, documentHandler(func(d host.Document) { e.OnActivated(d) }))
	sub.Subscribe(events.TopicDocumentDeactivated, documentHandler(e.OnDeactivated))
	sub.Subscribe(events.TopicDocumentSaved, documentHandler(e.OnSaved))
	sub.Subscribe(events.TopicDocumentClosed, documentHandler(e.OnClosed))
}

func documentHandler(fn func(host.Document)) events.EventHandler {
	return func(event interface{}) {
		docEvent, ok := event.(events.DocumentEvent)
		if !ok || docEvent.Document == nil {
			return
		}
		fn(docEvent.Document)
	}
}
