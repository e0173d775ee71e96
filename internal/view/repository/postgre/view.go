package postgres

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) AddViews(ctx context.Context, postID string, delta int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_views (post_id, views) VALUES ($1, $2)
		 ON CONFLICT (post_id) DO UPDATE SET views = post_views.views + EXCLUDED.views`,
		postID, delta,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.view.repository.postgres.AddViews.Exec: %v", err)
		return errors.Wrap(err, "add views")
	}
	return nil
}

func (r *implRepository) Count(ctx context.Context, postID string) (int64, error) {
	var row struct {
		Views int64 `boil:"views"`
	}
	err := queries.Raw(
		`SELECT COALESCE((SELECT views FROM post_views WHERE post_id = $1), 0) AS views`,
		postID,
	).Bind(ctx, r.db, &row)
	if err != nil {
		r.l.Errorf(ctx, "internal.view.repository.postgres.Count: %v", err)
		return 0, errors.Wrap(err, "count views")
	}
	return row.Views, nil
}
