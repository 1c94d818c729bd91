package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByLoginFn func(ctx context.Context, login string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	if m.getByLoginFn != nil {
		return m.getByLoginFn(ctx, login)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, login, passwordHash, authorities)
	}
	return &domain.User{ID: 1, Login: login, PasswordHash: passwordHash, Authorities: authorities}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash := hashed(t, password)

	users := &mockUserRepo{
		getByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return &domain.User{ID: 1, Login: "testuser", PasswordHash: hash}, nil
		},
	}

	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			if userID != 1 {
				t.Errorf("expected userID 1, got %d", userID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			if userAgent != "agent" {
				t.Errorf("expected user agent to be stored, got %q", userAgent)
			}
			if !expiresAt.After(time.Now()) {
				t.Error("expiry should be in the future")
			}
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	token, err := svc.Login(ctx, "testuser", password, "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	hash := hashed(t, "correctpass")

	users := &mockUserRepo{
		getByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return &domain.User{ID: 1, Login: "testuser", PasswordHash: hash}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	_, err := svc.Login(ctx, "testuser", "wrongpass", "agent", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_SSOAccountHasNoPassword(t *testing.T) {
	users := &mockUserRepo{
		getByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return &domain.User{ID: 3, Login: login}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})
	if _, err := svc.Authenticate(context.Background(), "sso", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	ctx := context.Background()
	token := "validtoken"

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    1,
				UserAgent: "agent",
				ExpiresAt: time.Now().Add(1 * time.Hour),
			}, nil
		},
	}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: 1, Login: "testuser"}, nil
		},
	}

	svc := NewAuthService(users, sessions)
	user, err := svc.ValidateSession(ctx, token, "agent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Login != "testuser" {
		t.Errorf("expected login 'testuser', got %s", user.Login)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	ctx := context.Background()
	token := "expiredtoken"

	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    1,
				UserAgent: "agent",
				ExpiresAt: time.Now().Add(-1 * time.Hour),
			}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions)
	_, err := svc.ValidateSession(ctx, token, "agent")
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}

func TestAuthService_ValidateSession_UserAgentMismatch(t *testing.T) {
	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, UserAgent: "agent", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions)
	if _, err := svc.ValidateSession(context.Background(), "tok", "other-agent"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected hijacked session to be deleted")
	}
}

func TestAuthService_ValidateSession_Missing(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.ValidateSession(context.Background(), "nope", "agent"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_CreateInitialUser_Success(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{
		countFn: func(ctx context.Context) (int, error) {
			return 0, nil
		},
		createFn: func(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
			if login != "admin" {
				t.Errorf("expected login 'admin', got %s", login)
			}
			if passwordHash == "" {
				t.Error("password hash should not be empty")
			}
			u := &domain.User{ID: 1, Login: login, Authorities: authorities}
			if !u.IsAdmin() {
				t.Error("first account should be an administrator")
			}
			return u, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if err := svc.CreateInitialUser(ctx, "admin", "password123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_CreateInitialUser_UsersExist(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(ctx context.Context) (int, error) {
			return 1, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if err := svc.CreateInitialUser(context.Background(), "admin", "password123"); !errors.Is(err, ErrUsersExist) {
		t.Errorf("expected ErrUsersExist, got %v", err)
	}
}

func TestAuthService_ValidateForwardAuth_ExistingUser(t *testing.T) {
	users := &mockUserRepo{
		getByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return &domain.User{ID: 1, Login: "ssouser"}, nil
		},
		createFn: func(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
			t.Error("existing user must not be re-created")
			return nil, errors.New("unexpected")
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	user, err := svc.ValidateForwardAuth(context.Background(), "ssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Login != "ssouser" {
		t.Errorf("expected login 'ssouser', got %s", user.Login)
	}
}

func TestAuthService_ValidateForwardAuth_NewUser(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
			if passwordHash != "" {
				t.Error("provisioned accounts have no password")
			}
			return &domain.User{ID: 2, Login: login, Authorities: authorities}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	user, err := svc.ValidateForwardAuth(context.Background(), "newssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Login != "newssouser" {
		t.Errorf("expected login 'newssouser', got %s", user.Login)
	}
	if user.IsAdmin() || !user.HasAuthority(domain.RoleUser) {
		t.Errorf("provisioned account should be a plain user, got %v", user.Authorities)
	}
}

func TestAuthService_ValidateForwardAuth_Empty(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.ValidateForwardAuth(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty header")
	}
}

func TestAuthService_LoginWithUser_RaceOnCreate(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.User{ID: 9, Login: login}, nil
		},
		createFn: func(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
			return nil, errors.New("duplicate key")
		},
	}
	var sessionUser int64
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			sessionUser = userID
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	if _, err := svc.LoginWithUser(context.Background(), "racer", "agent", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sessionUser != 9 {
		t.Errorf("expected session for user 9, got %d", sessionUser)
	}
}
