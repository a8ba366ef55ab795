// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsuzuki/internal/platform/apperr"
	"github.com/taibuivan/tsuzuki/internal/platform/sec"
	"github.com/taibuivan/tsuzuki/internal/users/auth"
)

// # Test Doubles

// fakeUserStore implements [auth.UserRepository] in memory.
type fakeUserStore struct {
	byID       map[string]*auth.User
	byEmail    map[string]*auth.User
	byUsername map[string]*auth.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:       make(map[string]*auth.User),
		byEmail:    make(map[string]*auth.User),
		byUsername: make(map[string]*auth.User),
	}
}

func (store *fakeUserStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, exists := store.byID[id]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (store *fakeUserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, exists := store.byEmail[email]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (store *fakeUserStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, exists := store.byUsername[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (store *fakeUserStore) Create(_ context.Context, user *auth.User) error {
	if _, taken := store.byEmail[user.Email]; taken {
		return apperr.Conflict("Username or email is already registered")
	}
	if _, taken := store.byUsername[user.Username]; taken {
		return apperr.Conflict("Username or email is already registered")
	}
	store.byID[user.ID] = user
	store.byEmail[user.Email] = user
	store.byUsername[user.Username] = user
	return nil
}

// fakeSessionStore implements [auth.SessionRepository] over a map keyed by
// token hash, mirroring the volatile store's revoke-is-delete semantics.
type fakeSessionStore struct {
	byTokenHash map[string]*auth.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byTokenHash: make(map[string]*auth.Session)}
}

func (store *fakeSessionStore) Create(_ context.Context, session *auth.Session) error {
	store.byTokenHash[session.TokenHash] = session
	return nil
}

func (store *fakeSessionStore) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, exists := store.byTokenHash[tokenHash]
	if !exists {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (store *fakeSessionStore) Revoke(_ context.Context, tokenHash string) error {
	delete(store.byTokenHash, tokenHash)
	return nil
}

// fakeTokenProvider issues deterministic token strings without signing keys.
type fakeTokenProvider struct {
	issued int
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	provider.issued++
	return fmt.Sprintf("access-token-%s-%d", userID, provider.issued), nil
}

// # Helpers

func newAuthService(users *fakeUserStore, sessions *fakeSessionStore) *auth.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return auth.NewService(users, sessions, &fakeTokenProvider{}, logger)
}

func validRegistration() auth.RegisterInput {
	return auth.RegisterInput{
		Username: "okabe",
		Email:    "okabe@example.com",
		Password: "el-psy-congroo",
	}
}

// # Registration

/*
TestRegister_HashesPasswordAndDefaults verifies that registration stores a
bcrypt hash rather than the plain password, assigns the member role, and
falls back to the username for a missing display name.
*/
func TestRegister_HashesPasswordAndDefaults(t *testing.T) {
	users := newFakeUserStore()
	service := newAuthService(users, newFakeSessionStore())

	user, err := service.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "el-psy-congroo", user.PasswordHash, "the plain password must never be stored")
	assert.True(t, sec.CheckPasswordHash("el-psy-congroo", user.PasswordHash))
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.Equal(t, "okabe", user.DisplayName, "display name must default to the username")
}

/*
TestRegister_RejectsWeakInput verifies the field-level preconditions.
*/
func TestRegister_RejectsWeakInput(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeSessionStore())

	cases := []struct {
		name   string
		mutate func(*auth.RegisterInput)
	}{
		{"short username", func(input *auth.RegisterInput) { input.Username = "ab" }},
		{"malformed email", func(input *auth.RegisterInput) { input.Email = "not-an-email" }},
		{"short password", func(input *auth.RegisterInput) { input.Password = "short" }},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			input := validRegistration()
			testCase.mutate(&input)

			_, err := service.Register(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestRegister_DuplicateIdentityConflicts verifies that reusing an email or a
username surfaces as Conflict.
*/
func TestRegister_DuplicateIdentityConflicts(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeSessionStore())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Same email, different username
	duplicate := validRegistration()
	duplicate.Username = "kurisu"
	_, err = service.Register(context.Background(), duplicate)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Same username, different email
	duplicate = validRegistration()
	duplicate.Email = "okabe2@example.com"
	_, err = service.Register(context.Background(), duplicate)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Login

/*
TestLogin_AcceptsEmailOrUsername verifies credential checking against both
identifier forms and that a session is opened on success.
*/
func TestLogin_AcceptsEmailOrUsername(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	service := newAuthService(users, sessions)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	for _, login := range []string{"okabe@example.com", "okabe"} {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Login:    login,
			Password: "el-psy-congroo",
		})

		require.NoError(t, err, "login via %q", login)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))
	}

	assert.Len(t, sessions.byTokenHash, 2, "each login must open its own refresh session")
}

/*
TestLogin_WrongCredentialsAreIndistinguishable verifies that an unknown
account and a wrong password yield the same generic Unauthorized message.
*/
func TestLogin_WrongCredentialsAreIndistinguishable(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeSessionStore())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{Login: "nobody", Password: "whatever-pass"})
	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{Login: "okabe", Password: "wrong-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownErr).Code)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error(), "failure messages must not reveal whether the account exists")
}

// # Session Lifecycle

/*
TestRefreshSession_RotatesTokens verifies refresh-token rotation: the old
token is revoked, a new distinct pair is issued, and replaying the consumed
token fails.
*/
func TestRefreshSession_RotatesTokens(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeSessionStore())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	initial, err := service.Login(context.Background(), auth.LoginInput{Login: "okabe", Password: "el-psy-congroo"})
	require.NoError(t, err)

	// 1. Rotation yields a fresh, distinct pair
	rotated, err := service.RefreshSession(context.Background(), initial.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)
	assert.NotEqual(t, initial.AccessToken, rotated.AccessToken)

	// 2. The consumed token no longer refreshes
	_, err = service.RefreshSession(context.Background(), initial.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 3. The rotated token still works
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken, "", "")
	require.NoError(t, err)
}

/*
TestLogout_RevokesAndIsIdempotent verifies that logging out invalidates the
refresh token and that repeating the call still succeeds.
*/
func TestLogout_RevokesAndIsIdempotent(t *testing.T) {
	sessions := newFakeSessionStore()
	service := newAuthService(newFakeUserStore(), sessions)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "okabe", Password: "el-psy-congroo"})
	require.NoError(t, err)

	// 1. First logout removes the session
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.byTokenHash)

	// 2. Repeating it is harmless
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	// 3. The revoked token cannot refresh
	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
