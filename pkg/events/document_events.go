package events

import "github.com/kcaldas/tabslimiter/pkg/host"

// Lifecycle topics published by the editor glue
const (
	TopicDocumentCreated     = "document.created"
	TopicDocumentLoaded      = "document.loaded"
	TopicDocumentActivated   = "document.activated"
	TopicDocumentDeactivated = "document.deactivated"
	TopicDocumentSaved       = "document.saved"
	TopicDocumentClosed      = "document.closed"
)

// DocumentEvent carries the document a lifecycle notification is about
type DocumentEvent struct {
	Document host.Document
	topic    string
}

// NewDocumentEvent creates an event for topic.
func NewDocumentEvent(topic string, doc host.Document) DocumentEvent {
	return DocumentEvent{Document: doc, topic: topic}
}

// Topic returns the event topic
func (e DocumentEvent) Topic() string {
	return e.topic
}

// PublishDocument is a shorthand for publishing a DocumentEvent.
func PublishDocument(p Publisher, topic string, doc host.Document) {
	p.Publish(topic, NewDocumentEvent(topic, doc))
}
