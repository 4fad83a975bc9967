package di

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/app/config"
	"product-service/app/rest/handlers"
)

var userColumns = []string{"id", "first_name", "last_name", "email", "password", "created_at", "updated_at"}

func testConfig() *config.Config {
	return &config.Config{
		Port:                     "9000",
		LogLevel:                 "info",
		SecretKeyJWT:             "an-integration-test-secret",
		AccessTokenExpire:        15 * time.Minute,
		AccessTokenExpireRefresh: time.Hour,
		AllowedOrigins:           []string{"*"},
		AllowedMethods:           []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:           []string{"Authorization", "Content-Type"},
		EnableMetrics:            true,
	}
}

func newTestContainer(t *testing.T) (*Container, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	container, err := newContainer(testConfig(), nil, mockDB, logger, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return container, mockDB
}

func send(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestContainer_RegisterThenReadProfile(t *testing.T) {
	container, mockDB := newTestContainer(t)
	e := container.CreateRouter()

	mockDB.ExpectQuery("FROM get_users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userColumns))
	newID := 1
	mockDB.ExpectQuery("SELECT insert_user").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "ada@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"insert_user"}).AddRow(&newID))

	rec := send(e, http.MethodPost, "/auth/register",
		`{"first_name":"Ada","email":"ada@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var issued handlers.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.Equal(t, int64(900), issued.Expire)

	// The token resolves back to the stored user on a protected route
	first := "Ada"
	mockDB.ExpectQuery("FROM get_users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(newID, &first, nil, "ada@example.com", "$2a$10$stored", time.Now(), nil))

	rec = send(e, http.MethodGet, "/profile/me", "", issued.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"first_name":"Ada","last_name":null,"email":"ada@example.com"}`, rec.Body.String())

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestContainer_RejectsDuplicateRegistrationWithoutInsert(t *testing.T) {
	container, mockDB := newTestContainer(t)
	e := container.CreateRouter()

	mockDB.ExpectQuery("FROM get_users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(3, nil, nil, "ada@example.com", "$2a$10$existing", time.Now(), nil))

	rec := send(e, http.MethodPost, "/auth/register",
		`{"email":"ada@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Email already registered."}`, rec.Body.String())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestContainer_ProtectedRoutes(t *testing.T) {
	container, _ := newTestContainer(t)
	e := container.CreateRouter()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "profile without token", method: http.MethodGet, path: "/profile/me"},
		{name: "products without token", method: http.MethodGet, path: "/products"},
		{name: "products with garbage token", method: http.MethodGet, path: "/products", token: "not-a-jwt"},
		{name: "delete with empty token", method: http.MethodDelete, path: "/products/1", token: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(e, tt.method, tt.path, "", tt.token)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
			assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
		})
	}
}

func TestContainer_OperationalRoutes(t *testing.T) {
	container, _ := newTestContainer(t)
	e := container.CreateRouter()

	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/", "", "").Code)
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/health/live", "", "").Code)
	// No database handle is wired in tests
	assert.Equal(t, http.StatusServiceUnavailable, send(e, http.MethodGet, "/health/ready", "", "").Code)

	rec := send(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "product_service_http_requests_total")
}

func TestContainer_MetricsDisabled(t *testing.T) {
	container, _ := newTestContainer(t)
	container.Config.EnableMetrics = false

	rec := send(container.CreateRouter(), http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
