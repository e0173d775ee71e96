package postgres

import (
	"time"

	"blognest-api/internal/model"

	"github.com/aarondl/null/v8"
)

const messageColumns = `id, sender_id, receiver_id, type, content, media_url, read, recalled, deleted_by_sender, deleted_by_receiver, created_at`

type messageRow struct {
	ID                string      `boil:"id"`
	SenderID          string      `boil:"sender_id"`
	ReceiverID        string      `boil:"receiver_id"`
	Type              string      `boil:"type"`
	Content           string      `boil:"content"`
	MediaURL          null.String `boil:"media_url"`
	Read              bool        `boil:"read"`
	Recalled          bool        `boil:"recalled"`
	DeletedBySender   bool        `boil:"deleted_by_sender"`
	DeletedByReceiver bool        `boil:"deleted_by_receiver"`
	CreatedAt         time.Time   `boil:"created_at"`
}

func (r messageRow) toModel() model.PrivateMessage {
	m := model.PrivateMessage{
		ID:                r.ID,
		SenderID:          r.SenderID,
		ReceiverID:        r.ReceiverID,
		Type:              model.MessageType(r.Type),
		Content:           r.Content,
		Read:              r.Read,
		Recalled:          r.Recalled,
		DeletedBySender:   r.DeletedBySender,
		DeletedByReceiver: r.DeletedByReceiver,
		CreatedAt:         r.CreatedAt,
	}
	if r.MediaURL.Valid {
		m.MediaURL = &r.MediaURL.String
	}
	return m
}
