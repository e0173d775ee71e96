package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blognest-api/internal/message/repository"
	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
	postgresPkg "blognest-api/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

// conversationPredicate matches both directions of a user pair, with
// $1 and $2 bound to the participants.
const conversationPredicate = `((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))`

// visibilityPredicate hides rows the viewer ($3) soft-deleted.
const visibilityPredicate = `NOT ((sender_id = $3 AND deleted_by_sender) OR (receiver_id = $3 AND deleted_by_receiver))`

func (r *implRepository) Create(ctx context.Context, msg model.PrivateMessage) (model.PrivateMessage, error) {
	if msg.ID == "" {
		msg.ID = postgresPkg.NewUUID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = r.clock()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO private_messages (id, sender_id, receiver_id, type, content, media_url, read, recalled, deleted_by_sender, deleted_by_receiver, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		msg.ID, msg.SenderID, msg.ReceiverID, string(msg.Type), msg.Content,
		null.StringFromPtr(msg.MediaURL), msg.Read, msg.Recalled,
		msg.DeletedBySender, msg.DeletedByReceiver, msg.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Create.Exec: %v", err)
		return model.PrivateMessage{}, errors.Wrap(err, "insert message")
	}

	return msg, nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.PrivateMessage, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Detail.IsUUID: %v", err)
		return model.PrivateMessage{}, err
	}

	var row messageRow
	err := queries.Raw(
		`SELECT `+messageColumns+` FROM private_messages WHERE id = $1`,
		id,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.PrivateMessage{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.message.repository.postgres.Detail.Bind: %v", err)
		return model.PrivateMessage{}, errors.Wrap(err, "select message")
	}

	return row.toModel(), nil
}

func (r *implRepository) Page(ctx context.Context, opts repository.PageOptions) ([]model.PrivateMessage, paginator.Paginator, error) {
	userA, userB := opts.Key.Participants()
	where := ` WHERE ` + conversationPredicate + ` AND ` + visibilityPredicate
	args := []interface{}{userA, userB, opts.ViewerID}

	var total struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(`SELECT COUNT(*) AS count FROM private_messages`+where, args...).Bind(ctx, r.db, &total)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Page.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count messages")
	}

	pq := opts.PaginateQuery
	pq.Adjust()
	query := `SELECT ` + messageColumns + ` FROM private_messages` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, pq.Limit, pq.Offset())

	var rows []messageRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.Page.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "select messages")
	}

	res := make([]model.PrivateMessage, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}

	return res, paginator.Paginator{
		Total:       total.Count,
		Count:       int64(len(res)),
		PerPage:     pq.Limit,
		CurrentPage: pq.Page,
	}, nil
}

func (r *implRepository) History(ctx context.Context, key model.ConversationKey, viewerID string, limit int) ([]model.PrivateMessage, error) {
	userA, userB := key.Participants()

	// Newest rows first, then flipped so the snapshot reads oldest to
	// newest like a chat log.
	query := `SELECT ` + messageColumns + ` FROM private_messages WHERE ` +
		conversationPredicate + ` AND ` + visibilityPredicate +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	var rows []messageRow
	if err := queries.Raw(query, userA, userB, viewerID).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.History.Bind: %v", err)
		return nil, errors.Wrap(err, "select history")
	}

	res := make([]model.PrivateMessage, len(rows))
	for i, row := range rows {
		res[len(rows)-1-i] = row.toModel()
	}
	return res, nil
}

func (r *implRepository) SetRecalled(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE private_messages SET recalled = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.SetRecalled.Exec: %v", err)
		return errors.Wrap(err, "recall message")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) SetDeletedFor(ctx context.Context, id string, bySender bool) error {
	column := "deleted_by_receiver"
	if bySender {
		column = "deleted_by_sender"
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE private_messages SET `+column+` = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.SetDeletedFor.Exec: %v", err)
		return errors.Wrap(err, "delete message")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) MarkConversationRead(ctx context.Context, key model.ConversationKey, readerID string) error {
	userA, userB := key.Participants()
	partnerID := userA
	if readerID == userA {
		partnerID = userB
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE private_messages SET read = TRUE WHERE sender_id = $1 AND receiver_id = $2 AND read = FALSE`,
		partnerID, readerID,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.MarkConversationRead.Exec: %v", err)
		return errors.Wrap(err, "mark conversation read")
	}
	return nil
}

func (r *implRepository) CountUnreadTotal(ctx context.Context, userID string) (int64, error) {
	var total struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(
		`SELECT COUNT(*) AS count FROM private_messages
		 WHERE receiver_id = $1 AND read = FALSE AND recalled = FALSE AND deleted_by_receiver = FALSE`,
		userID,
	).Bind(ctx, r.db, &total)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.CountUnreadTotal: %v", err)
		return 0, errors.Wrap(err, "count unread messages")
	}
	return total.Count, nil
}

func (r *implRepository) HasReply(ctx context.Context, userID, replierID string) (bool, error) {
	var row struct {
		HasReply bool `boil:"has_reply"`
	}
	err := queries.Raw(
		`SELECT EXISTS (SELECT 1 FROM private_messages WHERE sender_id = $1 AND receiver_id = $2) AS has_reply`,
		replierID, userID,
	).Bind(ctx, r.db, &row)
	if err != nil {
		r.l.Errorf(ctx, "internal.message.repository.postgres.HasReply: %v", err)
		return false, errors.Wrap(err, "check reply")
	}
	return row.HasReply, nil
}
