package postgres

import (
	"context"

	postgresPkg "blognest-api/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) CreateFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (id, follower_id, followee_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		postgresPkg.NewUUID(), followerID, followeeID, r.clock(),
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.CreateFollow.Exec: %v", err)
		return false, errors.Wrap(err, "insert follow")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "insert follow")
	}
	return n > 0, nil
}

func (r *implRepository) DeleteFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.DeleteFollow.Exec: %v", err)
		return false, errors.Wrap(err, "delete follow")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "delete follow")
	}
	return n > 0, nil
}

func (r *implRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var row struct {
		IsFollowing bool `boil:"is_following"`
	}
	err := queries.Raw(
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2) AS is_following`,
		followerID, followeeID,
	).Bind(ctx, r.db, &row)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.IsFollowing: %v", err)
		return false, errors.Wrap(err, "check follow")
	}
	return row.IsFollowing, nil
}

func (r *implRepository) FollowCounts(ctx context.Context, userID string) (int64, int64, error) {
	var row struct {
		Followers int64 `boil:"followers"`
		Following int64 `boil:"following"`
	}
	err := queries.Raw(
		`SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following`,
		userID,
	).Bind(ctx, r.db, &row)
	if err != nil {
		r.l.Errorf(ctx, "internal.friend.repository.postgres.FollowCounts: %v", err)
		return 0, 0, errors.Wrap(err, "count follows")
	}
	return row.Followers, row.Following, nil
}
