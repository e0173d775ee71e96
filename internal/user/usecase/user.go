package usecase

import (
	"context"

	"blognest-api/internal/model"
	"blognest-api/internal/user"
	"blognest-api/internal/user/repository"
	"blognest-api/pkg/encrypter"
	postgresPkg "blognest-api/pkg/postgre"
	"blognest-api/pkg/scope"
)

func (uc *usecase) Detail(ctx context.Context, sc model.Scope, id string) (user.UserOutput, error) {
	usr, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Detail: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: usr}, nil
}

func (uc *usecase) DetailMe(ctx context.Context, sc model.Scope) (user.UserOutput, error) {
	usr, err := uc.repo.Detail(ctx, sc, sc.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.DetailMe: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: usr}, nil
}

func (uc *usecase) List(ctx context.Context, sc model.Scope, ip user.ListInput) ([]model.User, error) {
	opts := repository.ListOptions{
		Filter: repository.Filter{
			IDs: ip.Filter.IDs,
		},
	}

	usrs, err := uc.repo.List(ctx, sc, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.List: %v", err)
		return nil, err
	}

	return usrs, nil
}

func (uc *usecase) GetOne(ctx context.Context, sc model.Scope, ip user.GetOneInput) (model.User, error) {
	usr, err := uc.repo.GetOne(ctx, sc, repository.GetOneOptions{
		Username: ip.Username,
		ID:       ip.ID,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return model.User{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.GetOne: %v", err)
		return model.User{}, err
	}

	return usr, nil
}

func (uc *usecase) Register(ctx context.Context, ip user.RegisterInput) (user.UserOutput, error) {
	if ip.Username == "" || ip.Password == "" {
		return user.UserOutput{}, user.ErrFieldRequired
	}

	_, err := uc.repo.GetOne(ctx, model.Scope{}, repository.GetOneOptions{Username: ip.Username})
	if err == nil {
		return user.UserOutput{}, user.ErrUserExists
	}
	if err != repository.ErrNotFound {
		uc.l.Errorf(ctx, "internal.user.usecase.Register.GetOne: %v", err)
		return user.UserOutput{}, err
	}

	hash, err := encrypter.HashPassword(ip.Password)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Register.HashPassword: %v", err)
		return user.UserOutput{}, err
	}

	nickname := ip.Nickname
	if nickname == "" {
		nickname = ip.Username
	}

	usr := model.User{
		ID:           postgresPkg.NewUUID(),
		Username:     ip.Username,
		Nickname:     nickname,
		PasswordHash: hash,
		IsActive:     true,
	}

	created, err := uc.repo.Create(ctx, model.Scope{}, repository.CreateOptions{User: usr})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Register: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: created}, nil
}

func (uc *usecase) Login(ctx context.Context, ip user.LoginInput) (user.LoginOutput, error) {
	usr, err := uc.repo.GetOne(ctx, model.Scope{}, repository.GetOneOptions{Username: ip.Username})
	if err != nil {
		if err == repository.ErrNotFound {
			return user.LoginOutput{}, user.ErrWrongPassword
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Login.GetOne: %v", err)
		return user.LoginOutput{}, err
	}

	if !encrypter.CheckPasswordHash(ip.Password, usr.PasswordHash) {
		return user.LoginOutput{}, user.ErrWrongPassword
	}

	token, err := uc.scopeManager.CreateToken(scope.Payload{
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     model.RoleUser,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Login.CreateToken: %v", err)
		return user.LoginOutput{}, err
	}

	return user.LoginOutput{User: usr, Token: token}, nil
}

func (uc *usecase) ListByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return uc.List(ctx, model.Scope{}, user.ListInput{Filter: user.Filter{IDs: ids}})
}

func (uc *usecase) UpdateProfile(ctx context.Context, sc model.Scope, ip user.UpdateProfileInput) (user.UserOutput, error) {
	usr, err := uc.repo.Detail(ctx, sc, sc.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.UpdateProfile.Detail: %v", err)
		return user.UserOutput{}, err
	}

	if ip.Nickname != "" {
		usr.Nickname = ip.Nickname
	}
	if ip.AvatarURL != "" {
		usr.AvatarURL = &ip.AvatarURL
	}
	if ip.Bio != "" {
		usr.Bio = &ip.Bio
	}

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{User: usr})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.UpdateProfile.Update: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: updated}, nil
}
