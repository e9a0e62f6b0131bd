package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

type memUserStore struct {
	users map[uuid.UUID]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uuid.UUID]*model.User{}}
}

func (m *memUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memUserStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	cp := *user
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func newTestService(store *memUserStore) *Service {
	return NewService(store, "test-secret", time.Hour)
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "correct horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newMemUserStore()
	svc := newTestService(store)

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Error("no token issued")
	}
	if resp.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized lowercase", resp.Email)
	}

	stored, _ := store.GetUserByID(context.Background(), resp.UserID)
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "correct horse" || stored.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}

	login, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != resp.UserID {
		t.Errorf("login user = %s, want %s", login.UserID, resp.UserID)
	}

	userID, err := svc.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != resp.UserID {
		t.Errorf("token subject = %s, want %s", userID, resp.UserID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newMemUserStore())

	mutate := []struct {
		name string
		fn   func(*model.RegisterRequest)
	}{
		{"empty name", func(r *model.RegisterRequest) { r.FullName = "  " }},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *model.RegisterRequest) { r.Password = "short" }},
	}
	for _, tc := range mutate {
		t.Run(tc.name, func(t *testing.T) {
			req := registerReq()
			tc.fn(req)
			if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrInvalidRegistration) {
				t.Fatalf("err = %v, want ErrInvalidRegistration", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemUserStore())

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	req := registerReq()
	req.Email = "ADA@example.com" // same address, different case
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFailures(t *testing.T) {
	store := newMemUserStore()
	svc := newTestService(store)

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com", Password: "wrong password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "correct horse"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	store.users[resp.UserID].IsActive = false
	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "ada@example.com", Password: "correct horse"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deactivated account: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	svc := newTestService(newMemUserStore())

	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	other := NewService(newMemUserStore(), "different-secret", time.Hour)
	resp, err := other.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign-secret token: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, "test-secret", -time.Minute)

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}
