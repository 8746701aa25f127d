package models

// Message is one sender's text inside a project. The id and timestamp are
// assigned by the store at creation and never change; content is mutable
// only through an edit by the original sender.
type Message struct {
	ID        string     `json:"id"`
	SenderID  string     `json:"senderId"`
	Content   string     `json:"content"`
	Timestamp *Timestamp `json:"timestamp"`
	Edited    bool       `json:"edited,omitempty"`
	EditedAt  *Timestamp `json:"editedAt,omitempty"`
}
