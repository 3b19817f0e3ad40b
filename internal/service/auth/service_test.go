package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/mocks"
	"github.com/gulftrading/gtg-api/internal/service/auth"
	"github.com/gulftrading/gtg-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*auth.Service, *mocks.UserStore) {
	t.Helper()
	users := mocks.NewUserStore()
	tokens := auth.NewTestJWTService("test-secret-that-is-long-enough-for-testing", time.Hour, nil)
	svc := auth.NewService(users, tokens, auth.NewBcryptHasher(), nil)
	return svc, users
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("succeeds and issues token", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		user, token, err := svc.Register(context.Background(), "Layla", "layla@example.com", "longenoughpw", "ACME", "+973-1111")
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, domain.RoleStaff, user.Role)
		assert.Equal(t, "ACME", user.Company)
		assert.Empty(t, user.Password, "plaintext password must be cleared")
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "longenoughpw", user.HashedPassword)
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, _, err := svc.Register(context.Background(), "A", "dup@example.com", "longenoughpw", "", "")
		require.NoError(t, err)

		_, _, err = svc.Register(context.Background(), "B", "DUP@Example.COM", "longenoughpw", "", "")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, _, err := svc.Register(context.Background(), "A", "bad-email", "longenoughpw", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		_, _, err = svc.Register(context.Background(), "A", "a@b.co", "short", "", "")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, svc *auth.Service, email, password string) *domain.User {
		t.Helper()
		user, _, err := svc.Register(context.Background(), "User", email, password, "", "")
		require.NoError(t, err)
		return user
	}

	t.Run("succeeds and stamps last login", func(t *testing.T) {
		t.Parallel()
		svc, users := newTestService(t)
		registered := register(t, svc, "login@example.com", "longenoughpw")

		user, token, err := svc.Login(context.Background(), "login@example.com", "longenoughpw")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, registered.ID, user.ID)

		stored, err := users.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("unknown email and wrong password return the identical error", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		register(t, svc, "known@example.com", "longenoughpw")

		_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever-pw")
		_, _, errWrongPw := svc.Login(context.Background(), "known@example.com", "wrong-password")

		require.Error(t, errUnknown)
		require.Error(t, errWrongPw)
		assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, auth.ErrInvalidCredentials)
		// No user-existence oracle: the two failures are indistinguishable.
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		t.Parallel()
		svc, users := newTestService(t)
		registered := register(t, svc, "off@example.com", "longenoughpw")

		stored, err := users.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		stored.Active = false
		require.NoError(t, users.Update(context.Background(), stored))

		_, _, err = svc.Login(context.Background(), "off@example.com", "longenoughpw")
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})

	t.Run("failed last-login stamp does not fail the login", func(t *testing.T) {
		t.Parallel()
		svc, users := newTestService(t)
		register(t, svc, "stamp@example.com", "longenoughpw")
		users.RecordLoginErr = assert.AnError

		_, token, err := svc.Login(context.Background(), "stamp@example.com", "longenoughpw")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("rehashes with the new password", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		user, _, err := svc.Register(context.Background(), "U", "chg@example.com", "original-pass", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "original-pass", "brand-new-pass"))

		_, _, err = svc.Login(context.Background(), "chg@example.com", "original-pass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, _, err = svc.Login(context.Background(), "chg@example.com", "brand-new-pass")
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		user, _, err := svc.Register(context.Background(), "U", "chg2@example.com", "original-pass", "", "")
		require.NoError(t, err)

		err = svc.ChangePassword(context.Background(), user.ID, "not-the-password", "brand-new-pass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	t.Run("valid token resolves to the user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		registered, token, err := svc.Register(context.Background(), "U", "res@example.com", "longenoughpw", "", "")
		require.NoError(t, err)

		user, err := svc.ResolveIdentity(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("valid token for a deactivated user is rejected", func(t *testing.T) {
		t.Parallel()
		svc, users := newTestService(t)
		registered, token, err := svc.Register(context.Background(), "U", "res2@example.com", "longenoughpw", "", "")
		require.NoError(t, err)

		stored, err := users.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		stored.Active = false
		require.NoError(t, users.Update(context.Background(), stored))

		_, err = svc.ResolveIdentity(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})

	t.Run("token for a deleted user is invalid", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		tokens := auth.NewTestJWTService("test-secret-that-is-long-enough-for-testing", time.Hour, nil)
		token, err := tokens.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		_, err = svc.ResolveIdentity(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		_, err := svc.ResolveIdentity(context.Background(), "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
