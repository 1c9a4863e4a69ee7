package models

// WebhookPayload is the body LINE posts to the webhook.
// Only the first event is acted on.
type WebhookPayload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event is one LINE webhook event. Message is nil for non-message events
// such as follow or postback.
type Event struct {
	Type       string   `json:"type"`
	ReplyToken string   `json:"replyToken"`
	Source     Source   `json:"source"`
	Message    *Message `json:"message,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// Source identifies who sent the event.
type Source struct {
	Type    string `json:"type"` // "user", "group", "room"
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

// Message is the message object of a message event. Text is empty for
// stickers, images and other non-text types.
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// FirstTextMessage returns the text and reply token of the first event.
// ok is false when either is missing, which callers treat as a no-op.
func (p WebhookPayload) FirstTextMessage() (text, replyToken string, ok bool) {
	if len(p.Events) == 0 {
		return "", "", false
	}
	ev := p.Events[0]
	if ev.Message == nil || ev.Message.Text == "" || ev.ReplyToken == "" {
		return "", "", false
	}
	return ev.Message.Text, ev.ReplyToken, true
}
