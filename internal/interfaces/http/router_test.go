package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/application/analytics"
	"github.com/jhoicas/company-admin/internal/application/auth"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/report"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/infrastructure/events"
	"github.com/jhoicas/company-admin/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/company-admin/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/company-admin/internal/interfaces/http"
	"github.com/jhoicas/company-admin/pkg/logger"
)

type testEnv struct {
	app       *fiber.App
	companies *memory.CompanyStore
	users     *memory.UserStore
	admin     string
	user      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	companies := memory.NewCompanyStore()
	users := memory.NewUserStore()

	userUC := usecase.NewUserUseCase(users, memory.NewTxRunner(users), events.Noop{}, log)
	authUC := auth.NewAuthUseCase(userUC, users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:       usecase.NewCompanyUseCase(companies, log),
		UserUC:          userUC,
		DashboardUC:     analytics.NewDashboardUseCase(companies, 0, log),
		ReportUC:        report.NewCompanyReportUseCase(companies, infrapdf.NewMarotoReportGenerator(), log),
		AuthUC:          authUC,
		JWTSecret:       testJWTSecret,
		DefaultPageSize: 10,
	})

	ctx := context.Background()
	_, err := userUC.EnsureAdmin(ctx, "admin@acme.co", "admin123")
	require.NoError(t, err)
	_, err = userUC.Create(ctx, dto.CreateUserRequest{Email: "user@acme.co", Password: "user1234"})
	require.NoError(t, err)

	env := &testEnv{app: app, companies: companies, users: users}
	env.admin = env.login(t, "admin@acme.co", "admin123")
	env.user = env.login(t, "user@acme.co", "user1234")
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, raw := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.Token
}

func (e *testEnv) seedCompanies(t *testing.T, levels ...int) {
	t.Helper()
	for i, lvl := range levels {
		require.NoError(t, e.companies.Create(context.Background(), &entity.Company{
			Code:          "C" + strconv.Itoa(i),
			Name:          "Empresa " + strconv.Itoa(i),
			Level:         lvl,
			AnnualRevenue: decimal.NewFromInt(int64(i)),
		}))
	}
}

func TestRouter_RutasProtegidas(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/companies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/users", env.user, dto.CreateUserRequest{Email: "x@acme.co"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_ListCompaniesPaginado(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1, 1, 2, 2, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/companies?page=3&page_size=10", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CompanyListResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(5), out.Total)

	_, raw = env.do(t, http.MethodGet, "/api/companies?levels=1,x,3&page_size=abc", env.user, nil)
	out = dto.CompanyListResponse{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 10, out.PageSize)
	assert.Equal(t, "C4", out.Items[0].Code)
}

func TestRouter_ListCompaniesRangoContradictorio(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1, 2)

	resp, raw := env.do(t, http.MethodGet, "/api/companies?annual_revenue_min=1000000&annual_revenue_max=100", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CompanyListResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Zero(t, out.Total)
}

func TestRouter_LecturaDegradadaResponde503(t *testing.T) {
	env := newTestEnv(t)
	env.companies.FailWith(domain.ErrStoreUnavailable)

	resp, raw := env.do(t, http.MethodGet, "/api/dashboard/stats", env.user, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var out dto.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Success)
}

func TestRouter_GetByIDNoExponeErroresDelAlmacen(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1)

	env.companies.FailWith(fmt.Errorf("get company: %w: dial tcp 10.0.0.5:5432: connection refused", domain.ErrStoreUnavailable))
	resp, raw := env.do(t, http.MethodGet, "/api/companies/1", env.user, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "STORE_UNAVAILABLE", out.Code)
	assert.Equal(t, domain.ErrStoreUnavailable.Error(), out.Message)
	assert.NotContains(t, string(raw), "10.0.0.5")

	env.users.FailWith(errors.New("relation \"users\" does not exist"))
	resp, raw = env.do(t, http.MethodGet, "/api/users/1", env.user, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	out = dto.ErrorResponse{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)
	assert.NotContains(t, string(raw), "relation")
}

func TestRouter_ListCompaniesPaginaEnorme(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1, 2, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/companies?page=922337203685477581&page_size=100", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CompanyListResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(3), out.Total)
}

func TestRouter_Chart(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1, 1, 1, 2, 2, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/companies/chart?dimension=level", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ChartResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, []string{"1", "2", "3"}, out.Labels)
	assert.Equal(t, []int64{3, 2, 1}, out.Data)

	resp, _ = env.do(t, http.MethodGet, "/api/companies/chart?dimension=revenue", env.user, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CompanyGetByIDYCreate(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/companies", env.admin, map[string]any{
		"code": "ACME", "name": "Acme", "level": 1, "annual_revenue": "125000000000000000000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CompanyMutationResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotNil(t, created.Company)

	resp, _ = env.do(t, http.MethodPost, "/api/companies", env.admin, map[string]any{"code": "ACME", "name": "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/api/companies/"+strconv.FormatInt(created.Company.ID, 10), env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"annual_revenue":"125000000000000000000"`)

	resp, _ = env.do(t, http.MethodGet, "/api/companies/999", env.user, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = env.do(t, http.MethodGet, "/api/companies/abc", env.user, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ReportPDF(t *testing.T) {
	env := newTestEnv(t)
	env.seedCompanies(t, 1, 2, 3)

	resp, raw := env.do(t, http.MethodGet, "/api/companies/report.pdf?levels=1,2", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "empresas-")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_UsersCRUD(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/users", env.admin, dto.CreateUserRequest{Email: "ana@acme.co", Role: entity.RoleManager})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.UserMutationResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	id := strconv.FormatInt(created.User.ID, 10)

	resp, raw = env.do(t, http.MethodPost, "/api/users", env.admin, dto.CreateUserRequest{Email: "ana@acme.co"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var failed dto.MutationResponse
	require.NoError(t, json.Unmarshal(raw, &failed))
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)

	status := entity.StatusPending
	resp, raw = env.do(t, http.MethodPatch, "/api/users/"+id, env.admin, dto.UpdateUserRequest{Status: &status})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"status":"Pending"`)

	resp, _ = env.do(t, http.MethodPatch, "/api/users/999", env.admin, dto.UpdateUserRequest{Status: &status})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/api/users?search=ANA&roles=Manager", env.user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.UserListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, int64(1), list.Total)

	resp, _ = env.do(t, http.MethodDelete, "/api/users/"+id, env.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, "/api/users/"+id, env.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BulkDelete(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/users/bulk-delete", env.admin, dto.BulkDeleteRequest{IDs: []int64{2, 999}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.BulkDeleteResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Equal(t, int64(1), out.Deleted)

	resp, raw = env.do(t, http.MethodGet, "/api/users/roles", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var roles dto.RolesResponse
	require.NoError(t, json.Unmarshal(raw, &roles))
	assert.Equal(t, []string{entity.RoleAdmin}, roles.Roles)
}

func TestRouter_RegisterYLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "nuevo@acme.co", Password: "secreto1"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "nuevo@acme.co", Password: "secreto1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "EMAIL_EXISTS")

	resp, _ = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nuevo@acme.co", Password: "incorrecto"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
