package postgres

import (
	"context"
	"database/sql"
	"strings"

	"blognest-api/internal/model"
	"blognest-api/internal/user/repository"
	postgresPkg "blognest-api/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.User, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.IsUUID: %v", err)
		return model.User{}, err
	}

	var row userRow
	err := queries.Raw(
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.Bind: %v", err)
		return model.User{}, errors.Wrap(err, "select user")
	}

	return row.toModel(), nil
}

func (r *implRepository) List(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`
	args := []interface{}{}

	if len(opts.Filter.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(opts.Filter.IDs); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.List.ValidateUUIDs: %v", err)
			return nil, err
		}
		query += ` AND id = ANY($1)`
		args = append(args, pq.Array(opts.Filter.IDs))
	}

	var rows []userRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "select users")
	}

	res := make([]model.User, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implRepository) GetOne(ctx context.Context, sc model.Scope, opts repository.GetOneOptions) (model.User, error) {
	conds := []string{"deleted_at IS NULL"}
	args := []interface{}{}

	if opts.ID != "" {
		if err := postgresPkg.IsUUID(opts.ID); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.GetOne.IsUUID: %v", err)
			return model.User{}, err
		}
		args = append(args, opts.ID)
		conds = append(conds, "id = $1")
	} else if opts.Username != "" {
		args = append(args, opts.Username)
		conds = append(conds, "username = $1")
	} else {
		return model.User{}, repository.ErrNotFound
	}

	var row userRow
	err := queries.Raw(
		`SELECT `+userColumns+` FROM users WHERE `+strings.Join(conds, " AND "),
		args...,
	).Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.GetOne.Bind: %v", err)
		return model.User{}, errors.Wrap(err, "select user")
	}

	return row.toModel(), nil
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.User, error) {
	usr := opts.User
	if usr.ID == "" {
		usr.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(usr.ID); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Create.IsUUID: %v", err)
		return model.User{}, err
	}

	now := r.clock()
	usr.CreatedAt = now
	usr.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, nickname, password_hash, avatar_url, bio, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		usr.ID, usr.Username, usr.Nickname, null.StringFrom(usr.PasswordHash),
		null.StringFromPtr(usr.AvatarURL), null.StringFromPtr(usr.Bio),
		usr.IsActive, usr.CreatedAt, usr.UpdatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Create.Exec: %v", err)
		return model.User{}, errors.Wrap(err, "insert user")
	}

	return usr, nil
}

func (r *implRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.User, error) {
	usr := opts.User
	usr.UpdatedAt = r.clock()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET nickname = $2, avatar_url = $3, bio = $4, is_active = $5, updated_at = $6
		 WHERE id = $1 AND deleted_at IS NULL`,
		usr.ID, usr.Nickname, null.StringFromPtr(usr.AvatarURL), null.StringFromPtr(usr.Bio),
		usr.IsActive, usr.UpdatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Update.Exec: %v", err)
		return model.User{}, errors.Wrap(err, "update user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.User{}, repository.ErrNotFound
	}

	return usr, nil
}
