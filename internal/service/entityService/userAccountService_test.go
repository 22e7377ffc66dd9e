package entityService

import (
	"context"
	"errors"
	"testing"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T {
	return &v
}

func requireValidationKey(t *testing.T, err error, key string) {
	t.Helper()
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want ValidationError %q", err, key)
	}
	if validationErr.Key != key {
		t.Fatalf("error key = %q, want %q", validationErr.Key, key)
	}
	if !errors.Is(err, service.ErrBadRequest) {
		t.Fatalf("ValidationError does not unwrap to ErrBadRequest")
	}
}

func TestUserAccountService_Create(t *testing.T) {
	ctx := context.Background()
	s := NewUserAccountService(newFakeRepo(), newFakeCache())

	user, err := s.Create(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if user.ID == 0 || user.Login != "alice" || user.Email != "alice@example.com" {
		t.Errorf("Create() = %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("password hash does not match: %v", err)
	}

	_, err = s.Create(ctx, "alice", "other@example.com", "secret2")
	requireValidationKey(t, err, "loginexists")
}

func TestUserAccountService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	s := NewUserAccountService(newFakeRepo(), cache)

	user, err := s.Create(ctx, "bob", "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	updated, err := s.PartialUpdate(ctx, user.ID, model.UserAccountChanges{Email: ptr("bob@corp.example")})
	if err != nil {
		t.Fatalf("PartialUpdate() unexpected error: %v", err)
	}
	if updated.Login != "bob" || updated.Email != "bob@corp.example" || updated.PasswordHash != user.PasswordHash {
		t.Errorf("PartialUpdate() = %+v", updated)
	}
	if cache.portfolioFlushes != 1 {
		t.Errorf("portfolio cache flushed %d times, want 1", cache.portfolioFlushes)
	}

	_, err = s.PartialUpdate(ctx, 999, model.UserAccountChanges{Email: ptr("x@y.z")})
	requireValidationKey(t, err, "idnotfound")
}

func TestUserAccountService_Update(t *testing.T) {
	ctx := context.Background()
	s := NewUserAccountService(newFakeRepo(), newFakeCache())

	first, _ := s.Create(ctx, "carol", "carol@example.com", "secret1")
	_, _ = s.Create(ctx, "dave", "dave@example.com", "secret1")

	updated, err := s.Update(ctx, first.ID, "caroline", "caroline@example.com", "newsecret")
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Login != "caroline" {
		t.Errorf("login = %s, want caroline", updated.Login)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret")); err != nil {
		t.Errorf("password was not rehashed: %v", err)
	}

	_, err = s.Update(ctx, first.ID, "dave", "dave2@example.com", "secret1")
	requireValidationKey(t, err, "loginexists")
}

func TestUserAccountService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	cache := newFakeCache()
	s := NewUserAccountService(repo, cache)

	user, _ := s.Create(ctx, "erin", "erin@example.com", "secret1")

	got, err := s.Get(ctx, user.ID)
	if err != nil || got.ID != user.ID {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	_ = cache.SetUserAccount(ctx, model.UserAccount{ID: 4242, Login: "cached"})
	if got, err := s.Get(ctx, 4242); err != nil || got.Login != "cached" {
		t.Errorf("Get() did not serve from cache: %+v, %v", got, err)
	}

	if _, err := s.Get(ctx, 999); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() of missing account error = %v, want %v", err, service.ErrNotFound)
	}

	if err := s.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := repo.GetUserAccount(ctx, user.ID); err == nil {
		t.Errorf("account still stored after Delete()")
	}
	if cache.portfolioFlushes != 1 {
		t.Errorf("portfolio cache flushed %d times, want 1", cache.portfolioFlushes)
	}

	if err := s.Delete(ctx, user.ID); err != nil {
		t.Errorf("Delete() of missing account error = %v, want nil", err)
	}
}
