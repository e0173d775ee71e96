package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blognest-api/internal/model"
	"blognest-api/internal/notification/repository"
	"blognest-api/pkg/paginator"
	postgresPkg "blognest-api/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

func (r *implRepository) Append(ctx context.Context, notification model.Notification) (model.Notification, error) {
	if notification.ID == "" {
		notification.ID = postgresPkg.NewUUID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = r.clock()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, type, sender_id, receiver_id, message, reference_id, reference_extra_id, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notification.ID, string(notification.Type), notification.SenderID, notification.ReceiverID,
		notification.Message, null.StringFromPtr(notification.ReferenceID),
		null.StringFromPtr(notification.ReferenceExtraID), notification.Read, notification.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Append.Exec: %v", err)
		return model.Notification{}, errors.Wrap(err, "insert notification")
	}

	return notification, nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	query, countQuery, args := r.buildGetQuery(opts)

	var total struct {
		Count int64 `boil:"count"`
	}
	if err := queries.Raw(countQuery, args...).Bind(ctx, r.db, &total); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count notifications")
	}

	pq := opts.PaginateQuery
	pq.Adjust()
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", pq.Limit, pq.Offset())

	var rows []notificationRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "select notifications")
	}

	res := make([]model.Notification, len(rows))
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

func (r *implRepository) buildGetQuery(opts repository.GetOptions) (string, string, []interface{}) {
	where := ` WHERE receiver_id = $1`
	args := []interface{}{opts.Filter.ReceiverID}

	if len(opts.Filter.Types) > 0 {
		args = append(args, pq.Array(typeStrings(opts.Filter.Types)))
		where += fmt.Sprintf(` AND type = ANY($%d)`, len(args))
	}
	if opts.Filter.UnreadOnly {
		where += ` AND read = FALSE`
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + where
	countQuery := `SELECT COUNT(*) AS count FROM notifications` + where
	return query, countQuery, args
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Notification, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Detail.IsUUID: %v", err)
		return model.Notification{}, err
	}

	var row notificationRow
	err := queries.Raw(
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`,
		id,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Notification{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Detail.Bind: %v", err)
		return model.Notification{}, errors.Wrap(err, "select notification")
	}

	return row.toModel(), nil
}

func (r *implRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var total struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(
		`SELECT COUNT(*) AS count FROM notifications WHERE receiver_id = $1 AND read = FALSE`,
		userID,
	).Bind(ctx, r.db, &total)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.CountUnread: %v", err)
		return 0, errors.Wrap(err, "count unread")
	}
	return total.Count, nil
}

func (r *implRepository) CountUnreadByTypes(ctx context.Context, userID string, types []model.NotificationType) (int64, error) {
	if len(types) == 0 {
		return 0, nil
	}

	var total struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(
		`SELECT COUNT(*) AS count FROM notifications WHERE receiver_id = $1 AND read = FALSE AND type = ANY($2)`,
		userID, pq.Array(typeStrings(types)),
	).Bind(ctx, r.db, &total)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.CountUnreadByTypes: %v", err)
		return 0, errors.Wrap(err, "count unread by types")
	}
	return total.Count, nil
}

func (r *implRepository) MarkRead(ctx context.Context, userID, id string) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND receiver_id = $2`,
		id, userID,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.Exec: %v", err)
		return errors.Wrap(err, "mark read")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) MarkAllRead(ctx context.Context, userID string, types []model.NotificationType) error {
	query := `UPDATE notifications SET read = TRUE WHERE receiver_id = $1 AND read = FALSE`
	args := []interface{}{userID}

	if len(types) > 0 {
		args = append(args, pq.Array(typeStrings(types)))
		query += ` AND type = ANY($2)`
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.Exec: %v", err)
		return errors.Wrap(err, "mark all read")
	}
	return nil
}
