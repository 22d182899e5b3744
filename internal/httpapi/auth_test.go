package httpapi

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"catalogadmin/backend/internal/domain"
)

// stubUserStore is a minimal UserStore for auth tests.
type stubUserStore struct {
	users   []domain.UserAccount
	updated map[string]string
}

func (s *stubUserStore) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.users = append(s.users, user)
	return nil
}

func (s *stubUserStore) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	return append([]domain.UserAccount(nil), s.users...), nil
}

func (s *stubUserStore) UpdateUserPassword(_ context.Context, username string, password string) error {
	if s.updated == nil {
		s.updated = make(map[string]string)
	}
	s.updated[username] = password
	return nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestLoginAndParseToken(t *testing.T) {
	store := &stubUserStore{users: []domain.UserAccount{
		{Username: "admin", Password: mustHash(t, "secret99"), Role: "admin", Active: true, CreatedAt: time.Now().UTC()},
	}}
	auth := NewAuthManager("unit-test-secret", time.Hour, store)

	resp, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "secret99"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != "admin" {
		t.Fatalf("expected role admin, got %q", resp.Role)
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if actor.Username != "admin" || actor.Role != "admin" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestLoginRejectsBadPasswordAndInactive(t *testing.T) {
	store := &stubUserStore{users: []domain.UserAccount{
		{Username: "admin", Password: mustHash(t, "secret99"), Role: "admin", Active: true},
		{Username: "former", Password: mustHash(t, "gone1234"), Role: "staff", Active: false},
	}}
	auth := NewAuthManager("unit-test-secret", time.Hour, store)

	if _, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "wrong"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, err := auth.Login(domain.LoginRequest{Username: "ghost", Password: "secret99"}); err == nil {
		t.Fatal("expected error for unknown user")
	}
	if _, err := auth.Login(domain.LoginRequest{Username: "former", Password: "gone1234"}); err == nil {
		t.Fatal("expected error for inactive account")
	}
}

func TestParseTokenRejectsForgedAndExpired(t *testing.T) {
	auth := NewAuthManager("unit-test-secret", time.Hour, nil)

	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}

	other := NewAuthManager("different-secret", time.Hour, nil)
	forged, err := other.sign("admin", "admin", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(forged); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}

	expired, err := auth.sign("admin", "admin", time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(expired); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestBootstrapUpgradesPlainTextPasswords(t *testing.T) {
	store := &stubUserStore{users: []domain.UserAccount{
		{Username: "legacy", Password: "plain-password", Role: "staff", Active: true},
	}}
	auth := NewAuthManager("unit-test-secret", time.Hour, store)

	hashed, ok := auth.users["legacy"]
	if !ok {
		t.Fatal("expected legacy user to be loaded")
	}
	if !isPasswordHash(hashed.password) {
		t.Fatalf("expected bcrypt hash, got %q", hashed.password)
	}
	if !strings.HasPrefix(store.updated["legacy"], "$2") {
		t.Fatalf("expected store password upgraded to a hash, got %q", store.updated["legacy"])
	}

	if _, err := auth.Login(domain.LoginRequest{Username: "legacy", Password: "plain-password"}); err != nil {
		t.Fatalf("login with upgraded password: %v", err)
	}
}

func TestCreateStaffValidation(t *testing.T) {
	auth := NewAuthManager("unit-test-secret", time.Hour, &stubUserStore{})

	if _, err := auth.CreateStaff(domain.StaffCreateRequest{Username: "ab", Password: "longenough"}); err == nil {
		t.Fatal("expected error for short username")
	}
	if _, err := auth.CreateStaff(domain.StaffCreateRequest{Username: "clerk", Password: "123"}); err == nil {
		t.Fatal("expected error for short password")
	}

	created, err := auth.CreateStaff(domain.StaffCreateRequest{Username: "Clerk", Password: "password1"})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if created.Username != "clerk" {
		t.Fatalf("expected lowercased username, got %q", created.Username)
	}
	if created.Role != "staff" {
		t.Fatalf("expected role staff, got %q", created.Role)
	}

	if _, err := auth.CreateStaff(domain.StaffCreateRequest{Username: "clerk", Password: "password2"}); err == nil {
		t.Fatal("expected error for duplicate username")
	}

	staff := auth.ListStaff()
	if len(staff) != 1 || staff[0].Username != "clerk" {
		t.Fatalf("unexpected staff list %+v", staff)
	}
}
