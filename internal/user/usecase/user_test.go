package usecase

import (
	"context"
	"testing"

	"blognest-api/internal/model"
	"blognest-api/internal/user"
	"blognest-api/internal/user/repository"
	"blognest-api/pkg/scope"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type fakeRepo struct {
	users map[string]model.User // keyed by ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]model.User)}
}

func (r *fakeRepo) Detail(_ context.Context, _ model.Scope, id string) (model.User, error) {
	usr, ok := r.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return usr, nil
}

func (r *fakeRepo) List(_ context.Context, _ model.Scope, opts repository.ListOptions) ([]model.User, error) {
	var out []model.User
	for _, id := range opts.Filter.IDs {
		if usr, ok := r.users[id]; ok {
			out = append(out, usr)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOne(_ context.Context, _ model.Scope, opts repository.GetOneOptions) (model.User, error) {
	if opts.ID != "" {
		return r.Detail(context.Background(), model.Scope{}, opts.ID)
	}
	for _, usr := range r.users {
		if usr.Username == opts.Username {
			return usr, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, _ model.Scope, opts repository.CreateOptions) (model.User, error) {
	r.users[opts.User.ID] = opts.User
	return opts.User, nil
}

func (r *fakeRepo) Update(_ context.Context, _ model.Scope, opts repository.UpdateOptions) (model.User, error) {
	r.users[opts.User.ID] = opts.User
	return opts.User, nil
}

func newTestUsecase() (user.UseCase, *fakeRepo) {
	repo := newFakeRepo()
	mgr := scope.New("test-secret-key-with-32-characters!!")
	return New(&testLogger{}, repo, mgr), repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	out, err := uc.Register(ctx, user.RegisterInput{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if out.User.Nickname != "alice" {
		t.Errorf("Nickname should default to the username, got %q", out.User.Nickname)
	}
	if out.User.PasswordHash == "s3cret" {
		t.Error("Password must not be stored in clear")
	}

	login, err := uc.Login(ctx, user.LoginInput{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("Login should issue a token")
	}

	if _, err := uc.Login(ctx, user.LoginInput{Username: "alice", Password: "wrong"}); err != user.ErrWrongPassword {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
	if _, err := uc.Login(ctx, user.LoginInput{Username: "nobody", Password: "x"}); err != user.ErrWrongPassword {
		t.Errorf("Unknown user should look like a wrong password, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, user.RegisterInput{Username: "alice"}); err != user.ErrFieldRequired {
		t.Errorf("Missing password: expected ErrFieldRequired, got %v", err)
	}

	if _, err := uc.Register(ctx, user.RegisterInput{Username: "alice", Password: "x"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := uc.Register(ctx, user.RegisterInput{Username: "alice", Password: "y"}); err != user.ErrUserExists {
		t.Errorf("Duplicate username: expected ErrUserExists, got %v", err)
	}
}

func TestListByIDs(t *testing.T) {
	uc, repo := newTestUsecase()
	ctx := context.Background()

	repo.users["u1"] = model.User{ID: "u1", Username: "alice"}
	repo.users["u2"] = model.User{ID: "u2", Username: "bob"}

	users, err := uc.ListByIDs(ctx, []string{"u1", "u2", "missing"})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}

	users, err = uc.ListByIDs(ctx, nil)
	if err != nil || users != nil {
		t.Errorf("Empty input should short-circuit, got (%v, %v)", users, err)
	}
}

func TestUpdateProfileIsPartial(t *testing.T) {
	uc, repo := newTestUsecase()
	ctx := context.Background()

	bio := "old bio"
	repo.users["u1"] = model.User{ID: "u1", Username: "alice", Nickname: "Alice", Bio: &bio}

	out, err := uc.UpdateProfile(ctx, model.Scope{UserID: "u1"}, user.UpdateProfileInput{
		Nickname: "Alice A",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if out.User.Nickname != "Alice A" {
		t.Errorf("Nickname should be updated, got %q", out.User.Nickname)
	}
	if out.User.Bio == nil || *out.User.Bio != "old bio" {
		t.Error("Untouched fields must keep their values")
	}
}
