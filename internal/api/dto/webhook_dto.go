package dto

// WebhookBody is the inbound POST /webhook envelope.
type WebhookBody struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry carries the messaging events of one page entry.
type WebhookEntry struct {
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one inbound event; exactly one of Postback,
// Message.QuickReply or Message.Text is expected to be meaningful.
type MessagingEvent struct {
	Sender   EventSender     `json:"sender"`
	Postback *Postback       `json:"postback,omitempty"`
	Message  *InboundMessage `json:"message,omitempty"`
}

// EventSender identifies the conversation participant.
type EventSender struct {
	ID string `json:"id"`
}

// Postback is a payload-carrying button tap.
type Postback struct {
	Payload string `json:"payload"`
}

// InboundMessage is a user message, possibly a quick-reply tap.
type InboundMessage struct {
	Text       string         `json:"text,omitempty"`
	QuickReply *QuickReplyRef `json:"quick_reply,omitempty"`
}

// QuickReplyRef carries the payload of a tapped quick reply.
type QuickReplyRef struct {
	Payload string `json:"payload"`
}
