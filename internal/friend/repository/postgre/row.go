package postgres

import (
	"strings"
	"time"

	"blognest-api/internal/model"

	"github.com/aarondl/null/v8"
)

const requestColumns = `id, sender_id, receiver_id, message, status, created_at, resolved_at`

type requestRow struct {
	ID         string    `boil:"id"`
	SenderID   string    `boil:"sender_id"`
	ReceiverID string    `boil:"receiver_id"`
	Message    string    `boil:"message"`
	Status     string    `boil:"status"`
	CreatedAt  time.Time `boil:"created_at"`
	ResolvedAt null.Time `boil:"resolved_at"`
}

func (r requestRow) toModel() model.FriendRequest {
	req := model.FriendRequest{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Message:    r.Message,
		Status:     model.FriendRequestStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if r.ResolvedAt.Valid {
		req.ResolvedAt = &r.ResolvedAt.Time
	}
	return req
}

// orderPair returns the pair in canonical order, matching how
// friendship rows are stored.
func orderPair(userA, userB string) (string, string) {
	if strings.Compare(userA, userB) > 0 {
		return userB, userA
	}
	return userA, userB
}
