package model

import (
	"strings"
	"time"
)

// MessageType classifies the content of a private message.
type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeImage MessageType = "IMAGE"
	MessageTypeVideo MessageType = "VIDEO"
)

// IsMedia reports whether the message carries an attachment.
func (t MessageType) IsMedia() bool {
	return t == MessageTypeImage || t == MessageTypeVideo
}

// PrivateMessage is a persisted chat message between two users.
type PrivateMessage struct {
	ID                string      `json:"id"`
	SenderID          string      `json:"sender_id"`
	ReceiverID        string      `json:"receiver_id"`
	Type              MessageType `json:"type"`
	Content           string      `json:"content"`
	MediaURL          *string     `json:"media_url,omitempty"`
	Read              bool        `json:"read"`
	Recalled          bool        `json:"recalled"`
	DeletedBySender   bool        `json:"-"`
	DeletedByReceiver bool        `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
}

// VisibleTo reports whether userID still sees this message after
// per-participant deletes.
func (m *PrivateMessage) VisibleTo(userID string) bool {
	switch userID {
	case m.SenderID:
		return !m.DeletedBySender
	case m.ReceiverID:
		return !m.DeletedByReceiver
	default:
		return false
	}
}

// Chat event kinds pushed over conversation streams.
const (
	ChatEventHistory = "HISTORY"
	ChatEventMessage = "MESSAGE"
	ChatEventRecall  = "RECALL"
	ChatEventRead    = "READ"
)

// ChatEvent is the wire shape of one conversation stream frame.
type ChatEvent struct {
	Kind      string         `json:"kind"`
	Message   *MessageEvent  `json:"message,omitempty"`
	Messages  []MessageEvent `json:"messages,omitempty"`
	MessageID string         `json:"messageId,omitempty"`
	UserID    string         `json:"userId,omitempty"`
}

// MessageEvent is the wire shape of one chat message.
type MessageEvent struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	Type       MessageType `json:"type"`
	Content    string      `json:"content"`
	MediaURL   string      `json:"mediaUrl,omitempty"`
	Read       bool        `json:"read"`
	Recalled   bool        `json:"recalled"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ToEvent converts the persisted message to its wire shape. Recalled
// messages keep their envelope but lose content and media.
func (m PrivateMessage) ToEvent() MessageEvent {
	ev := MessageEvent{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Type:       m.Type,
		Content:    m.Content,
		Read:       m.Read,
		Recalled:   m.Recalled,
		CreatedAt:  m.CreatedAt,
	}
	if m.Recalled {
		ev.Content = ""
		return ev
	}
	if m.MediaURL != nil {
		ev.MediaURL = *m.MediaURL
	}
	return ev
}

// ConversationKey identifies the conversation between two users
// regardless of who initiated it.
type ConversationKey string

// NewConversationKey builds the canonical key for a user pair.
// The lower ID sorts first so both directions map to the same key.
func NewConversationKey(userA, userB string) ConversationKey {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return ConversationKey(userA + ":" + userB)
}

// Participants returns the two user IDs of the conversation.
func (k ConversationKey) Participants() (string, string) {
	parts := strings.SplitN(string(k), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Has reports whether userID is one of the two participants.
func (k ConversationKey) Has(userID string) bool {
	a, b := k.Participants()
	return userID == a || userID == b
}

// ConversationSummary describes one conversation in the inbox list.
type ConversationSummary struct {
	PartnerID       string          `json:"partner_id"`
	PartnerNickname string          `json:"partner_nickname,omitempty"`
	PartnerAvatar   string          `json:"partner_avatar,omitempty"`
	LastMessage     *PrivateMessage `json:"last_message,omitempty"`
	UnreadCount     int64           `json:"unread_count"`
}
