package auth

import (
	"context"
	"errors"
	"testing"

	domainauth "frontdesk/internal/domain/auth"
	domainuser "frontdesk/internal/domain/user"
	"frontdesk/internal/infra/security"
	"frontdesk/internal/infra/storage/memory"
)

func newTestService() *Service {
	return &Service{
		Users:     memory.NewUserRepository(),
		Sessions:  memory.NewSessionStore(),
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    security.RandomTokenGenerator{},
	}
}

func TestCreateStaffAndLogin(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	staff, err := service.CreateStaff(ctx, CreateStaffParams{
		Email:    "  Desk@Hotel.PE ",
		Name:     "Rosa",
		Password: "secret-pass",
		Roles:    []domainuser.Role{domainuser.RoleReception},
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if staff.Email != "desk@hotel.pe" {
		t.Errorf("Email = %q, want normalized", staff.Email)
	}

	result, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty session token")
	}

	resolved, err := service.ResolveToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if resolved.User.ID != staff.ID {
		t.Errorf("resolved user = %s, want %s", resolved.User.ID, staff.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.CreateStaff(ctx, CreateStaffParams{
		Email:    "desk@hotel.pe",
		Name:     "Rosa",
		Password: "secret-pass",
	}); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}

	if _, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := service.Login(ctx, LoginParams{Email: "nobody@hotel.pe", Password: "secret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestCreateStaffRejectsShortPassword(t *testing.T) {
	service := newTestService()
	_, err := service.CreateStaff(context.Background(), CreateStaffParams{
		Email:    "desk@hotel.pe",
		Name:     "Rosa",
		Password: "short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestBlockingRevokesSessions(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	staff, err := service.CreateStaff(ctx, CreateStaffParams{
		Email:    "desk@hotel.pe",
		Name:     "Rosa",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	result, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := service.SetBlocked(ctx, staff.ID, true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if _, err := service.ResolveToken(ctx, result.Token); !errors.Is(err, domainauth.ErrSessionNotFound) && !errors.Is(err, ErrUserBlocked) {
		t.Errorf("blocked resolve: err = %v", err)
	}
	if _, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "secret-pass"}); !errors.Is(err, ErrUserBlocked) {
		t.Errorf("blocked login: err = %v", err)
	}

	if _, err := service.SetBlocked(ctx, staff.ID, false); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if _, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "secret-pass"}); err != nil {
		t.Errorf("login after unblock: %v", err)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.CreateStaff(ctx, CreateStaffParams{
		Email:    "desk@hotel.pe",
		Name:     "Rosa",
		Password: "secret-pass",
	}); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	result, err := service.Login(ctx, LoginParams{Email: "desk@hotel.pe", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := service.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := service.ResolveToken(ctx, result.Token); !errors.Is(err, domainauth.ErrSessionNotFound) {
		t.Errorf("resolve after logout: err = %v", err)
	}
}
