package postgres

import (
	"context"
	"database/sql"

	"blognest-api/internal/friend/repository"
	"blognest-api/internal/model"
	postgresPkg "blognest-api/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) CreateRequest(ctx context.Context, req model.FriendRequest) (model.FriendRequest, error) {
	if req.ID == "" {
		req.ID = postgresPkg.NewUUID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.clock()
	}
	if req.Status == "" {
		req.Status = model.FriendRequestPending
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO friend_requests (id, sender_id, receiver_id, message, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.SenderID, req.ReceiverID, req.Message, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.CreateRequest.Exec: %v", err)
		return model.FriendRequest{}, errors.Wrap(err, "insert friend request")
	}

	return req, nil
}

func (r *implRepository) RequestDetail(ctx context.Context, id string) (model.FriendRequest, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.RequestDetail.IsUUID: %v", err)
		return model.FriendRequest{}, err
	}

	var row requestRow
	err := queries.Raw(
		`SELECT `+requestColumns+` FROM friend_requests WHERE id = $1`,
		id,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.FriendRequest{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.friend.repository.postgres.RequestDetail.Bind: %v", err)
		return model.FriendRequest{}, errors.Wrap(err, "select friend request")
	}

	return row.toModel(), nil
}

func (r *implRepository) PendingBetween(ctx context.Context, userA, userB string) (model.FriendRequest, error) {
	var row requestRow
	err := queries.Raw(
		`SELECT `+requestColumns+` FROM friend_requests
		 WHERE status = 'PENDING'
		   AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		 LIMIT 1`,
		userA, userB,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.FriendRequest{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.friend.repository.postgres.PendingBetween.Bind: %v", err)
		return model.FriendRequest{}, errors.Wrap(err, "select pending request")
	}

	return row.toModel(), nil
}

func (r *implRepository) PendingFor(ctx context.Context, receiverID string) ([]model.FriendRequest, error) {
	var rows []requestRow
	err := queries.Raw(
		`SELECT `+requestColumns+` FROM friend_requests
		 WHERE receiver_id = $1 AND status = 'PENDING'
		 ORDER BY created_at DESC`,
		receiverID,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.PendingFor.Bind: %v", err)
		return nil, errors.Wrap(err, "select pending requests")
	}

	res := make([]model.FriendRequest, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implRepository) CountPending(ctx context.Context, receiverID string) (int64, error) {
	var total struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(
		`SELECT COUNT(*) AS count FROM friend_requests WHERE receiver_id = $1 AND status = 'PENDING'`,
		receiverID,
	).Bind(ctx, r.db, &total)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.CountPending: %v", err)
		return 0, errors.Wrap(err, "count pending requests")
	}
	return total.Count, nil
}

func (r *implRepository) ResolveRequest(ctx context.Context, id string, status model.FriendRequestStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE friend_requests SET status = $1, resolved_at = $2 WHERE id = $3 AND status = 'PENDING'`,
		string(status), r.clock(), id,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.ResolveRequest.Exec: %v", err)
		return errors.Wrap(err, "resolve friend request")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) CreateFriendship(ctx context.Context, userA, userB string) error {
	userA, userB = orderPair(userA, userB)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO friendships (id, user_a, user_b, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_a, user_b) DO NOTHING`,
		postgresPkg.NewUUID(), userA, userB, r.clock(),
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.CreateFriendship.Exec: %v", err)
		return errors.Wrap(err, "insert friendship")
	}
	return nil
}

func (r *implRepository) DeleteFriendship(ctx context.Context, userA, userB string) error {
	userA, userB = orderPair(userA, userB)

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM friendships WHERE user_a = $1 AND user_b = $2`,
		userA, userB,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.DeleteFriendship.Exec: %v", err)
		return errors.Wrap(err, "delete friendship")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) IsFriend(ctx context.Context, userA, userB string) (bool, error) {
	userA, userB = orderPair(userA, userB)

	var row struct {
		IsFriend bool `boil:"is_friend"`
	}
	err := queries.Raw(
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a = $1 AND user_b = $2) AS is_friend`,
		userA, userB,
	).Bind(ctx, r.db, &row)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.IsFriend: %v", err)
		return false, errors.Wrap(err, "check friendship")
	}
	return row.IsFriend, nil
}
