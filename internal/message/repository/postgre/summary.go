package postgres

import (
	"context"

	"blognest-api/internal/model"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

// Summaries lists the user's conversations with their latest visible
// message. Unread counts come from a second grouped query merged in Go;
// one DISTINCT ON pass plus one GROUP BY beats a correlated subquery
// per partner.
func (r *implRepository) Summaries(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	var rows []struct {
		PartnerID string `boil:"partner_id"`
		messageRow
	}
	err := queries.Raw(
		`SELECT DISTINCT ON (partner_id) * FROM (
			SELECT `+messageColumns+`,
				CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner_id
			FROM private_messages
			WHERE (sender_id = $1 AND deleted_by_sender = FALSE)
			   OR (receiver_id = $1 AND deleted_by_receiver = FALSE)
		) m ORDER BY partner_id, created_at DESC`,
		userID,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Summaries.Bind: %v", err)
		return nil, errors.Wrap(err, "select summaries")
	}

	var unread []struct {
		PartnerID string `boil:"partner_id"`
		Count     int64  `boil:"count"`
	}
	err = queries.Raw(
		`SELECT sender_id AS partner_id, COUNT(*) AS count FROM private_messages
		 WHERE receiver_id = $1 AND read = FALSE AND recalled = FALSE AND deleted_by_receiver = FALSE
		 GROUP BY sender_id`,
		userID,
	).Bind(ctx, r.db, &unread)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Summaries.Unread: %v", err)
		return nil, errors.Wrap(err, "count unread per partner")
	}

	unreadByPartner := make(map[string]int64, len(unread))
	for _, u := range unread {
		unreadByPartner[u.PartnerID] = u.Count
	}

	summaries := make([]model.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		last := row.messageRow.toModel()
		summaries = append(summaries, model.ConversationSummary{
			PartnerID:   row.PartnerID,
			LastMessage: &last,
			UnreadCount: unreadByPartner[row.PartnerID],
		})
	}
	return summaries, nil
}
