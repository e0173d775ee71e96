package postgres

import (
	"time"

	"blognest-api/internal/model"

	"github.com/aarondl/null/v8"
)

const notificationColumns = `id, type, sender_id, receiver_id, message, reference_id, reference_extra_id, read, created_at`

type notificationRow struct {
	ID               string      `boil:"id"`
	Type             string      `boil:"type"`
	SenderID         string      `boil:"sender_id"`
	ReceiverID       string      `boil:"receiver_id"`
	Message          string      `boil:"message"`
	ReferenceID      null.String `boil:"reference_id"`
	ReferenceExtraID null.String `boil:"reference_extra_id"`
	Read             bool        `boil:"read"`
	CreatedAt        time.Time   `boil:"created_at"`
}

func (r notificationRow) toModel() model.Notification {
	n := model.Notification{
		ID:         r.ID,
		Type:       model.NotificationType(r.Type),
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Message:    r.Message,
		Read:       r.Read,
		CreatedAt:  r.CreatedAt,
	}
	if r.ReferenceID.Valid {
		n.ReferenceID = &r.ReferenceID.String
	}
	if r.ReferenceExtraID.Valid {
		n.ReferenceExtraID = &r.ReferenceExtraID.String
	}
	return n
}

func typeStrings(types []model.NotificationType) []string {
	res := make([]string, len(types))
	for i, t := range types {
		res[i] = string(t)
	}
	return res
}
