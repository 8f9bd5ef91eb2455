package service

import (
	"errors"
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/jwt"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(user *model.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (r *stubUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.TokenVersion = version
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{Email: email, FullName: "Tester", IsActive: active}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginIssuesUsableToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)
	seedUser(t, repo, "op@example.com", "secret123", true)

	response, err := svc.Login("op@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, err := svc.ValidateToken(response.Token)
	if err != nil {
		t.Fatalf("ValidateToken on fresh login: %v", err)
	}
	if user.Email != "op@example.com" {
		t.Errorf("validated user email = %q, want op@example.com", user.Email)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)
	seedUser(t, repo, "op@example.com", "secret123", true)

	if _, err := svc.Login("op@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsReplacedSession(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)
	seedUser(t, repo, "op@example.com", "secret123", true)

	first, err := svc.Login("op@example.com", "secret123")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	// Second login rotates the token version, invalidating the first token.
	if _, err := svc.Login("op@example.com", "secret123"); err != nil {
		t.Fatalf("second login: %v", err)
	}

	if _, err := svc.ValidateToken(first.Token); !errors.Is(err, ErrSessionReplaced) {
		t.Fatalf("err = %v, want ErrSessionReplaced", err)
	}
}

func TestValidateTokenRejectsInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)
	user := seedUser(t, repo, "op@example.com", "secret123", true)

	response, err := svc.Login("op@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	stored, _ := repo.FindByID(user.ID)
	stored.IsActive = false
	if err := repo.Update(stored); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	if _, err := svc.ValidateToken(response.Token); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
