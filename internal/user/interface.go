package user

import (
	"context"

	"blognest-api/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Detail(ctx context.Context, sc model.Scope, id string) (UserOutput, error)
	DetailMe(ctx context.Context, sc model.Scope) (UserOutput, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) ([]model.User, error)
	GetOne(ctx context.Context, sc model.Scope, ip GetOneInput) (model.User, error)
	Register(ctx context.Context, ip RegisterInput) (UserOutput, error)
	Login(ctx context.Context, ip LoginInput) (LoginOutput, error)
	UpdateProfile(ctx context.Context, sc model.Scope, ip UpdateProfileInput) (UserOutput, error)
	// ListByIDs is the profile lookup other domains use to enrich
	// their events and listings.
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}
