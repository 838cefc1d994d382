package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/infrastructure/hash"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	users      map[string]*domain.User
	nextID     int64
	failWith   error // if set, every call returns this error
	insertRace bool  // if set, Insert reports a duplicate despite Exists saying no
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) Exists(_ context.Context, username string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubAuthRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.insertRace {
		return nil, domain.ErrUserExists
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = cloneUser(stored)
	return stored, nil
}

func (r *stubAuthRepo) Update(_ context.Context, user *domain.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[user.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, username string) (bool, error) {
	return t.failures[username] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const strongPassword = "Sup3r$ecret"

func newTestAuthService(repo *stubAuthRepo, throttle LoginThrottle) *AuthService {
	issuer := NewTokenIssuer("test-secret", "document-platform", "document-platform-api")
	return NewAuthService(repo, hash.NewBcryptHasher(bcrypt.MinCost), issuer, throttle, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "alice", strongPassword, "editor")
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.Token == "" {
		t.Fatal("expected a token on successful registration")
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == strongPassword {
		t.Fatal("password must be hashed, not stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(strongPassword)); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if stored.Role != "editor" {
		t.Fatalf("unexpected role: %q", stored.Role)
	}
}

func TestAuthService_Register_NormalizesRoleCase(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "bob", strongPassword, "ADMIN")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if repo.users["bob"].Role != "admin" {
		t.Fatalf("role should be stored lower-case, got %q", repo.users["bob"].Role)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "mallory", strongPassword, "root")
	if result.Success {
		t.Fatal("expected failure for invalid role")
	}
	if result.Message != "Invalid role specified" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if len(repo.users) != 0 {
		t.Fatal("no user may be persisted on invalid role")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	first := svc.Register(context.Background(), "carol", strongPassword, "viewer")
	if !first.Success {
		t.Fatalf("first registration failed: %q", first.Message)
	}
	originalHash := repo.users["carol"].PasswordHash

	second := svc.Register(context.Background(), "carol", "An0ther!pass", "admin")
	if second.Success {
		t.Fatal("expected duplicate registration to fail")
	}
	if second.Message != "Username already exists" {
		t.Fatalf("unexpected message: %q", second.Message)
	}
	if repo.users["carol"].PasswordHash != originalHash || repo.users["carol"].Role != "viewer" {
		t.Fatal("first user's record must be untouched")
	}
}

func TestAuthService_Register_DuplicateLostRace(t *testing.T) {
	// The Exists pre-check passes but the unique index rejects the insert.
	repo := newStubAuthRepo()
	repo.insertRace = true
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "dave", strongPassword, "viewer")
	if result.Success {
		t.Fatal("expected failure when the store reports a duplicate")
	}
	if result.Message != "Username already exists" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "erin", "password", "viewer")
	if result.Success {
		t.Fatal("expected failure for weak password")
	}
	for _, fragment := range []string{"uppercase", "lowercase", "digit", "special character", "8 characters"} {
		if !strings.Contains(result.Message, fragment) {
			t.Errorf("weak-password message should mention %q, got %q", fragment, result.Message)
		}
	}
	if len(repo.users) != 0 {
		t.Fatal("no user may be persisted on weak password")
	}
}

func TestAuthService_Register_StoreFailureIsGeneric(t *testing.T) {
	repo := newStubAuthRepo()
	repo.failWith = errors.New("connection reset by peer")
	svc := newTestAuthService(repo, nil)

	result := svc.Register(context.Background(), "frank", strongPassword, "viewer")
	if result.Success {
		t.Fatal("expected failure when the store is down")
	}
	if strings.Contains(result.Message, "connection reset") {
		t.Fatalf("internal error text leaked to the caller: %q", result.Message)
	}
	if result.Message != "An error occurred. Please try again later." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.Register(context.Background(), "grace", strongPassword, "admin")

	result := svc.Login(context.Background(), "grace", strongPassword)
	if !result.Success {
		t.Fatalf("login failed: %q", result.Message)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "grace" || claims["role"] != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UniformFailureMessage(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.Register(context.Background(), "heidi", strongPassword, "viewer")

	wrongPassword := svc.Login(context.Background(), "heidi", "Wr0ng!pass")
	unknownUser := svc.Login(context.Background(), "nobody", strongPassword)

	if wrongPassword.Success || unknownUser.Success {
		t.Fatal("both logins must fail")
	}
	if wrongPassword.Message != "Invalid credentials" || unknownUser.Message != wrongPassword.Message {
		t.Fatalf("failure messages must be identical, got %q and %q", wrongPassword.Message, unknownUser.Message)
	}
}

func TestAuthService_Login_ThrottledAfterRepeatedFailures(t *testing.T) {
	repo := newStubAuthRepo()
	throttle := newStubThrottle(3)
	svc := newTestAuthService(repo, throttle)
	_ = svc.Register(context.Background(), "ivan", strongPassword, "viewer")

	for i := 0; i < 3; i++ {
		if r := svc.Login(context.Background(), "ivan", "Wr0ng!pass"); r.Message != "Invalid credentials" {
			t.Fatalf("attempt %d: unexpected message %q", i, r.Message)
		}
	}

	// Even the correct password is refused while throttled.
	blocked := svc.Login(context.Background(), "ivan", strongPassword)
	if blocked.Success {
		t.Fatal("expected throttled login to be refused")
	}
	if !strings.Contains(blocked.Message, "Too many failed login attempts") {
		t.Fatalf("unexpected message: %q", blocked.Message)
	}
}

func TestAuthService_Login_SuccessResetsThrottle(t *testing.T) {
	repo := newStubAuthRepo()
	throttle := newStubThrottle(3)
	svc := newTestAuthService(repo, throttle)
	_ = svc.Register(context.Background(), "judy", strongPassword, "viewer")

	_ = svc.Login(context.Background(), "judy", "Wr0ng!pass")
	_ = svc.Login(context.Background(), "judy", "Wr0ng!pass")

	if r := svc.Login(context.Background(), "judy", strongPassword); !r.Success {
		t.Fatalf("login should succeed below the limit: %q", r.Message)
	}
	if throttle.failures["judy"] != 0 {
		t.Fatal("successful login must reset the failure counter")
	}
}

// ---------------------------------------------------------------------------
// SetRole
// ---------------------------------------------------------------------------

func TestAuthService_SetRole_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.Register(context.Background(), "john", strongPassword, "viewer")

	result := svc.SetRole(context.Background(), "john", "editor")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "assigned") {
		t.Fatalf("confirmation should mention the assignment, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "john") || !strings.Contains(result.Message, "editor") {
		t.Fatalf("confirmation should name user and role, got %q", result.Message)
	}
	if repo.users["john"].Role != "editor" {
		t.Fatalf("role not persisted, got %q", repo.users["john"].Role)
	}
}

func TestAuthService_SetRole_CaseInsensitiveStoredLower(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)
	_ = svc.Register(context.Background(), "kim", strongPassword, "viewer")

	result := svc.SetRole(context.Background(), "kim", "Admin")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if repo.users["kim"].Role != "admin" {
		t.Fatalf("role should be stored lower-case, got %q", repo.users["kim"].Role)
	}
}

func TestAuthService_SetRole_InvalidRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.SetRole(context.Background(), "anyone", "root")
	if result.Success || result.Message != "Invalid role specified" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAuthService_SetRole_UserNotFound(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	result := svc.SetRole(context.Background(), "ghost", "editor")
	if result.Success || result.Message != "User not found" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
