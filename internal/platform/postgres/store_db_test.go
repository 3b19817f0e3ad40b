package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/catalog"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/platform/postgres"
	"github.com/gulftrading/gtg-api/internal/store"
	"github.com/gulftrading/gtg-api/migrations"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB is shared by every test in this package. The suite only runs when
// DATABASE_URL points at a disposable database.
var testDB *sql.DB

func TestMain(m *testing.M) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		os.Exit(0)
	}

	var err error
	testDB, err = sql.Open("pgx", dbURL)
	if err != nil {
		fmt.Printf("failed to open database connection: %v\n", err)
		os.Exit(1)
	}
	testDB.SetMaxOpenConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := testDB.PingContext(ctx); err != nil {
		fmt.Printf("failed to ping database: %v\n", err)
		os.Exit(1)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Printf("failed to set goose dialect: %v\n", err)
		os.Exit(1)
	}
	if err := goose.Up(testDB, "."); err != nil {
		fmt.Printf("failed to apply migrations: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Printf("failed to close database connection: %v\n", err)
	}
	os.Exit(exitCode)
}

func resetTables(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(`TRUNCATE contact_messages, order_status_history, order_services,
		order_products, orders, services, products, users`)
	require.NoError(t, err)
}

func newTestUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test User", email, "longenoughpw")
	require.NoError(t, err)
	user.HashedPassword = "bcrypt-hash-placeholder"
	user.Password = ""
	return user
}

func TestUserStoreDB(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	users := postgres.NewPostgresUserStore(testDB, nil)

	t.Run("create and fetch round trip", func(t *testing.T) {
		user := newTestUser(t, "round@example.com")
		require.NoError(t, users.Create(ctx, user))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, domain.RoleStaff, got.Role)
		assert.Nil(t, got.LastLogin)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "ROUND@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "round@example.com", got.Email)
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		dup := newTestUser(t, "Round@example.com")
		err := users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("record login stamps last_login", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "round@example.com")
		require.NoError(t, err)
		require.NoError(t, users.RecordLogin(ctx, got.ID))

		got, err = users.GetByID(ctx, got.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.LastLogin)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestProductStoreDB(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	products := postgres.NewPostgresProductStore(testDB, nil)

	seed := func(name string, category domain.ProductCategory, mutate func(*domain.Product)) *domain.Product {
		p, err := domain.NewProduct(name, category, "Description of "+name)
		require.NoError(t, err)
		if mutate != nil {
			mutate(p)
		}
		require.NoError(t, products.Create(ctx, p))
		return p
	}

	cam := seed("Dome Camera", domain.CategorySecurityCameras, func(p *domain.Product) {
		p.Brand = "Hikvision"
		p.Tags = []string{"cctv"}
	})
	seed("Business Laptop", domain.CategoryLaptops, func(p *domain.Product) { p.Featured = true })
	seed("Rack Server", domain.CategoryServers, nil)

	t.Run("slug collision maps to ErrSlugExists", func(t *testing.T) {
		p, err := domain.NewProduct("Dome   Camera!", domain.CategorySecurityCameras, "Another one.")
		require.NoError(t, err)
		assert.ErrorIs(t, products.Create(ctx, p), store.ErrSlugExists)
	})

	t.Run("jsonb lists round trip", func(t *testing.T) {
		got, err := products.GetByID(ctx, cam.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"cctv"}, got.Tags)
	})

	t.Run("search matches brand case-insensitively", func(t *testing.T) {
		page := catalog.NewPage(1, 10, catalog.DefaultProductPageSize)
		got, total, err := products.List(ctx, catalog.ProductFilter{Search: "hikvision"}, catalog.SortNewest, page)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Dome Camera", got[0].Name)
	})

	t.Run("name sort with pagination", func(t *testing.T) {
		page := catalog.NewPage(2, 2, catalog.DefaultProductPageSize)
		got, total, err := products.List(ctx, catalog.ProductFilter{}, catalog.SortName, page)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Rack Server", got[0].Name)
	})

	t.Run("distinct categories", func(t *testing.T) {
		categories, err := products.Categories(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Security Cameras", "Laptops", "Servers"}, categories)
	})
}

func TestOrderStoreDB(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	orders := postgres.NewPostgresOrderStore(testDB, nil)
	users := postgres.NewPostgresUserStore(testDB, nil)
	products := postgres.NewPostgresProductStore(testDB, nil)

	cam, err := domain.NewProduct("Dome Camera", domain.CategorySecurityCameras, "A camera.")
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, cam))

	newOrder := func(t *testing.T) *domain.Order {
		t.Helper()
		o, err := domain.NewOrder(domain.Customer{
			Name: "Ahmed", Email: "ahmed@example.com", Phone: "+973-1234",
		}, []domain.OrderProduct{{ProductID: cam.ID, Quantity: 2}}, nil, "")
		require.NoError(t, err)
		require.NoError(t, orders.Create(ctx, o))
		return o
	}

	t.Run("create mints sequential numbers and seeds history", func(t *testing.T) {
		first := newOrder(t)
		second := newOrder(t)
		assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
		assert.Regexp(t, `^GTG-\d{6}-\d{5}$`, first.OrderNumber)

		got, err := orders.GetByID(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, got.StatusHistory, 1)
		assert.Equal(t, domain.OrderStatusPending, got.StatusHistory[0].Status)
		require.Len(t, got.Products, 1)
		assert.Equal(t, "Dome Camera", got.Products[0].ProductName)
	})

	t.Run("status update appends history", func(t *testing.T) {
		o := newOrder(t)
		admin := newTestUser(t, fmt.Sprintf("admin-%s@example.com", uuid.NewString()[:8]))
		require.NoError(t, users.Create(ctx, admin))

		got, err := orders.UpdateStatus(ctx, o.ID, domain.OrderStatusProcessing, "Parts ordered", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusProcessing, got.Status)
		require.Len(t, got.StatusHistory, 2)
		assert.Equal(t, "Parts ordered", got.StatusHistory[1].Note)
	})

	t.Run("assign and clear", func(t *testing.T) {
		o := newOrder(t)
		staff := newTestUser(t, fmt.Sprintf("staff-%s@example.com", uuid.NewString()[:8]))
		require.NoError(t, users.Create(ctx, staff))

		got, err := orders.Assign(ctx, o.ID, staff.ID)
		require.NoError(t, err)
		require.NotNil(t, got.AssignedTo)
		assert.Equal(t, staff.Name, got.AssigneeName)

		got, err = orders.Assign(ctx, o.ID, uuid.Nil)
		require.NoError(t, err)
		assert.Nil(t, got.AssignedTo)
	})

	t.Run("filter by status", func(t *testing.T) {
		page := catalog.NewPage(1, 50, catalog.DefaultAdminPageSize)
		got, total, err := orders.List(ctx, catalog.OrderFilter{Status: "processing"}, catalog.SortNewest, page)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].StatusHistory, "list omits history")
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := orders.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 3, stats.Pending)
		assert.Equal(t, 1, stats.Processing)
	})

	t.Run("delete cascades", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, orders.Delete(ctx, o.ID))
		_, err := orders.GetByID(ctx, o.ID)
		assert.ErrorIs(t, err, store.ErrOrderNotFound)
	})
}

func TestContactStoreDB(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	contacts := postgres.NewPostgresContactStore(testDB, nil)
	users := postgres.NewPostgresUserStore(testDB, nil)

	msg, err := domain.NewContactMessage("Fatima", "fatima@example.com", "", "", "Do you install cameras?")
	require.NoError(t, err)
	require.NoError(t, contacts.Create(ctx, msg))

	t.Run("first view marks read", func(t *testing.T) {
		got, err := contacts.GetByID(ctx, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContactStatusRead, got.Status)
	})

	t.Run("replied stamps replier", func(t *testing.T) {
		admin := newTestUser(t, "contact-admin@example.com")
		require.NoError(t, users.Create(ctx, admin))

		got, err := contacts.UpdateStatus(ctx, msg.ID, domain.ContactStatusReplied, "Sent catalog", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContactStatusReplied, got.Status)
		require.NotNil(t, got.RepliedBy)
		assert.Equal(t, admin.ID, *got.RepliedBy)
		assert.NotNil(t, got.RepliedAt)
	})

	t.Run("filter by status", func(t *testing.T) {
		page := catalog.NewPage(1, 20, catalog.DefaultAdminPageSize)
		got, total, err := contacts.List(ctx, catalog.ContactFilter{Status: "replied"}, page)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, got, 1)
	})

	t.Run("unknown message", func(t *testing.T) {
		_, err := contacts.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrContactNotFound)
	})
}
