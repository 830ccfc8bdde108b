//go:build integration

package postgres

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/pkg/config"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{
		Host:           host,
		Port:           port.Int(),
		User:           "test",
		Password:       "test",
		DBName:         "testdb",
		SSLMode:        "disable",
		MaxConns:       5,
		ConnectRetries: 5,
		AutoMigrate:    true,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestIntegration_Companies(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := NewCompanyRepository(pool)

	country := "CO"
	for i, level := range []int{1, 1, 1, 2, 2, 3} {
		year := 1990 + i
		c := &entity.Company{
			Code:          "C" + strconv.Itoa(i),
			Name:          "Empresa " + strconv.Itoa(i),
			Level:         level,
			FoundedYear:   &year,
			AnnualRevenue: decimal.RequireFromString("9223372036854775807").Add(decimal.NewFromInt(int64(i))),
		}
		if i%2 == 0 {
			c.Country = &country
		}
		require.NoError(t, repo.Create(ctx, c))
	}

	t.Run("código duplicado", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Company{Code: "C0", Name: "Otra"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("paginación conserva el total", func(t *testing.T) {
		total, err := repo.Count(ctx, query.CompanyFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)

		page, err := repo.List(ctx, query.CompanyFilter{}, query.Page{Page: 3, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, page)

		first, err := repo.List(ctx, query.CompanyFilter{}, query.Page{Page: 1, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "C5", first[0].Code, "ordenado por ingresos descendente")
	})

	t.Run("rango contradictorio", func(t *testing.T) {
		f := query.CompanyFilter{FoundedYear: query.IntRange{Min: i64(2000), Max: i64(1900)}}
		n, err := repo.Count(ctx, f)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("totales sin pérdida de precisión", func(t *testing.T) {
		totals, err := repo.Totals(ctx, query.CompanyFilter{})
		require.NoError(t, err)
		want := decimal.RequireFromString("9223372036854775807").Mul(decimal.NewFromInt(6)).Add(decimal.NewFromInt(15))
		assert.True(t, want.Equal(totals.Revenue), totals.Revenue.String())
	})

	t.Run("agrupación por nivel y país", func(t *testing.T) {
		groups, err := repo.CountByDimension(ctx, query.DimensionLevel, query.CompanyFilter{})
		require.NoError(t, err)
		assert.Equal(t, []query.GroupCount{{Key: "1", Count: 3}, {Key: "2", Count: 2}, {Key: "3", Count: 1}}, query.TopGroups(groups, query.DefaultTopN))

		countries, err := repo.CountByDimension(ctx, query.DimensionCountry, query.CompanyFilter{})
		require.NoError(t, err)
		assert.Equal(t, []query.GroupCount{{Key: "CO", Count: 3}}, countries)
	})

	t.Run("años de fundación", func(t *testing.T) {
		after := 1992
		years, err := repo.CountByFoundedYear(ctx, &after)
		require.NoError(t, err)
		assert.Len(t, years, 3)
		assert.Equal(t, 1993, *years[0].Year)
	})
}

func TestIntegration_Users(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := NewUserRepository(pool)

	var ids []int64
	for _, email := range []string{"a@x.co", "b@x.co", "c@x.co"} {
		u := &entity.User{Email: email, Role: entity.RoleUser, Status: entity.StatusActive}
		require.NoError(t, repo.Create(ctx, u))
		ids = append(ids, u.ID)
	}

	err := repo.Create(ctx, &entity.User{Email: "a@x.co", Role: entity.RoleUser, Status: entity.StatusActive})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := repo.List(ctx, query.UserFilter{}, query.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c@x.co", list[0].Email, "más recientes primero")

	deleted, err := repo.DeleteMany(ctx, []int64{ids[0], ids[1], 999})
	require.NoError(t, err)
	assert.ElementsMatch(t, ids[:2], deleted)

	assert.ErrorIs(t, repo.Delete(ctx, 999), domain.ErrNotFound)

	runner := NewTxRunner(pool)
	err = runner.RunUsers(ctx, func(users repository.UserRepository, load func(context.Context, int64) (*entity.User, error)) error {
		u, err := load(ctx, ids[2])
		require.NoError(t, err)
		u.Role = entity.RoleAdmin
		return users.Update(ctx, u)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}
