package services

import (
	"context"
	"testing"
	"time"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/config"
	"daotrack/internal/core/domain"
	"daotrack/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo, *fakeNotifier) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	notifier := &fakeNotifier{}
	svc := NewAuthService(userRepo, tokenRepo, notifier, testConfig())
	return svc, userRepo, tokenRepo, notifier
}

func seedUser(t *testing.T, repo *fakeUserRepo, id, email, plain string, active bool) *models.User {
	t.Helper()
	hashed, err := password.Hash(plain)
	require.NoError(t, err)
	user := &models.User{
		ID:       id,
		Name:     "Test User",
		Email:    email,
		Password: hashed,
		Role:     "user",
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, userRepo, tokenRepo, _ := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		result, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "u1", result.User.ID)
		assert.Equal(t, 1, tokenRepo.activeCount("u1"))

		stored, err := userRepo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		_, err := svc.Login(ctx, &LoginInput{Email: "  AWA@Example.COM ", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		_, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)
		_, err := svc.Login(ctx, &LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, userRepo, _, _ := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", false)

		_, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

	login, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, 1, tokenRepo.activeCount("u1"))

	// the consumed token is dead
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// the rotated one still works
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

	login, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	assert.Equal(t, 0, tokenRepo.activeCount("u1"))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token to an active user", func(t *testing.T) {
		svc, userRepo, _, notifier := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		require.NoError(t, svc.ForgotPassword(ctx, "awa@example.com"))
		assert.NotEmpty(t, notifier.lastResetToken())

		stored, err := userRepo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ResetTokenHash)
	})

	t.Run("silent on unknown email", func(t *testing.T) {
		svc, _, _, notifier := newTestAuthService(t)
		require.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
		assert.Empty(t, notifier.resetTokens)
	})

	t.Run("silent on deactivated account", func(t *testing.T) {
		svc, userRepo, _, notifier := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", false)

		require.NoError(t, svc.ForgotPassword(ctx, "awa@example.com"))
		assert.Empty(t, notifier.resetTokens)
	})

	t.Run("new request replaces the previous token", func(t *testing.T) {
		svc, userRepo, _, notifier := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		require.NoError(t, svc.ForgotPassword(ctx, "awa@example.com"))
		first := notifier.lastResetToken()
		require.NoError(t, svc.ForgotPassword(ctx, "awa@example.com"))
		second := notifier.lastResetToken()
		require.NotEqual(t, first, second)

		assert.ErrorIs(t, svc.VerifyResetToken(ctx, first), domain.ErrResetTokenInvalid)
		assert.NoError(t, svc.VerifyResetToken(ctx, second))
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo, string) {
		svc, userRepo, tokenRepo, notifier := newTestAuthService(t)
		seedUser(t, userRepo, "u1", "awa@example.com", "password123", true)

		svc.now = func() time.Time { return base }
		require.NoError(t, svc.ForgotPassword(ctx, "awa@example.com"))
		return svc, userRepo, tokenRepo, notifier.lastResetToken()
	}

	t.Run("valid at 14 minutes", func(t *testing.T) {
		svc, userRepo, _, token := setup(t)
		svc.now = func() time.Time { return base.Add(14 * time.Minute) }

		require.NoError(t, svc.ResetPassword(ctx, token, "new-password-1"))

		stored, err := userRepo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, password.Verify("new-password-1", stored.Password))
		assert.Empty(t, stored.ResetTokenHash)
	})

	t.Run("expired at 16 minutes", func(t *testing.T) {
		svc, _, _, token := setup(t)
		svc.now = func() time.Time { return base.Add(16 * time.Minute) }

		err := svc.ResetPassword(ctx, token, "new-password-1")
		assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
	})

	t.Run("single use", func(t *testing.T) {
		svc, _, _, token := setup(t)
		svc.now = func() time.Time { return base.Add(time.Minute) }

		require.NoError(t, svc.ResetPassword(ctx, token, "new-password-1"))
		err := svc.ResetPassword(ctx, token, "new-password-2")
		assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
	})

	t.Run("revokes every session", func(t *testing.T) {
		svc, _, tokenRepo, token := setup(t)

		svc.now = time.Now
		_, err := svc.Login(ctx, &LoginInput{Email: "awa@example.com", Password: "password123"})
		require.NoError(t, err)
		require.Equal(t, 1, tokenRepo.activeCount("u1"))

		svc.now = func() time.Time { return base.Add(time.Minute) }
		require.NoError(t, svc.ResetPassword(ctx, token, "new-password-1"))
		assert.Equal(t, 0, tokenRepo.activeCount("u1"))
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _, _, token := setup(t)
		svc.now = func() time.Time { return base.Add(time.Minute) }

		err := svc.ResetPassword(ctx, token, "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
		// token survives a failed attempt
		assert.NoError(t, svc.VerifyResetToken(ctx, token))
	})
}
