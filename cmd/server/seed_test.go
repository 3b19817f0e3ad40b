package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/mocks"
	"github.com/gulftrading/gtg-api/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedFixture() (*mocks.UserStore, *mocks.ProductStore, *mocks.ServiceStore) {
	return mocks.NewUserStore(), mocks.NewProductStore(), mocks.NewServiceStore()
}

func runSeedData(t *testing.T, users *mocks.UserStore, products *mocks.ProductStore, services *mocks.ServiceStore, cfg config.AdminConfig) error {
	t.Helper()
	return seedData(context.Background(), users, products, services, auth.NewBcryptHasher(), cfg, testLogger())
}

func TestSeedData(t *testing.T) {
	t.Parallel()

	adminCfg := config.AdminConfig{
		Email:    "admin@gulftradinggroup.com",
		Password: "Admin@123456",
	}

	t.Run("creates the admin with a verifiable password", func(t *testing.T) {
		t.Parallel()
		users, products, services := seedFixture()
		require.NoError(t, runSeedData(t, users, products, services, adminCfg))

		admin, err := users.GetByEmail(context.Background(), adminCfg.Email)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, admin.Role)
		assert.Equal(t, "Gulf Trading Group", admin.Company)
		assert.True(t, admin.Active)
		assert.Empty(t, admin.Password)
		assert.NoError(t, auth.NewBcryptHasher().Compare(admin.HashedPassword, adminCfg.Password))
	})

	t.Run("populates the sample catalog", func(t *testing.T) {
		t.Parallel()
		users, products, services := seedFixture()
		require.NoError(t, runSeedData(t, users, products, services, adminCfg))

		all, total, err := products.List(context.Background(), catalog.ProductFilter{}, catalog.SortNewest,
			catalog.NewPage(1, catalog.DefaultProductPageSize, catalog.DefaultProductPageSize))
		require.NoError(t, err)
		assert.Equal(t, len(sampleProducts), total)

		featured := 0
		for _, p := range all {
			require.True(t, p.Category.Valid())
			if p.Featured {
				featured++
			}
		}
		assert.Equal(t, 4, featured)

		active, err := services.ListActive(context.Background())
		require.NoError(t, err)
		assert.Len(t, active, len(sampleServices))
	})

	t.Run("is idempotent across repeated runs", func(t *testing.T) {
		t.Parallel()
		users, products, services := seedFixture()
		require.NoError(t, runSeedData(t, users, products, services, adminCfg))
		require.NoError(t, runSeedData(t, users, products, services, adminCfg))

		_, total, err := products.List(context.Background(), catalog.ProductFilter{}, catalog.SortNewest,
			catalog.NewPage(1, catalog.DefaultProductPageSize, catalog.DefaultProductPageSize))
		require.NoError(t, err)
		assert.Equal(t, len(sampleProducts), total)
	})

	t.Run("refuses to run without an admin password", func(t *testing.T) {
		t.Parallel()
		users, products, services := seedFixture()
		err := runSeedData(t, users, products, services, config.AdminConfig{Email: "admin@gulftradinggroup.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin password")
	})

	t.Run("rejects a short admin password", func(t *testing.T) {
		t.Parallel()
		users, products, services := seedFixture()
		err := runSeedData(t, users, products, services, config.AdminConfig{
			Email:    "admin@gulftradinggroup.com",
			Password: "short",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})
}
