//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/app"
	"hr-payroll/internal/config"
	"hr-payroll/internal/database"
)

const testDatabaseURLEnv = "HR_TEST_DATABASE_URL"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tenantSession struct {
	TenantID string
	UserID   string
	Token    string
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	databaseURL := os.Getenv(testDatabaseURLEnv)
	if databaseURL == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	cfg := &config.Config{
		ServerPort:       "0",
		RequestTimeout:   10 * time.Second,
		DatabaseURL:      databaseURL,
		JWTSecret:        "integration-secret",
		JWTLoginTTL:      time.Hour,
		JWTDefaultTTL:    time.Hour,
		BcryptCost:       4,
		CookieHTTPOnly:   true,
		LoginPath:        "/auth/login",
		WebRoot:          t.TempDir(),
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     -1,
		AuthRateLimitRPM: 1000,
		DBMaxConns:       4,
		DBMinConns:       1,
		LogFormat:        "json",
	}

	h, stop, err := app.NewHandler(ctx, cfg, db.Pool)
	require.NoError(t, err)
	t.Cleanup(stop)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

// registerTenant creates a fresh company and returns its admin session.
func registerTenant(t *testing.T, server *httptest.Server) tenantSession {
	t.Helper()

	suffix := uuid.NewString()[:8]
	body := mustJSON(t, map[string]any{
		"companyName":   "Acme " + suffix,
		"companyEmail":  "hr-" + suffix + "@acme.test",
		"adminName":     "Ada Admin",
		"adminEmail":    "ada-" + suffix + "@acme.test",
		"adminPassword": "correct horse",
	})

	resp := doRequest(t, mustNewRequest(t, http.MethodPost, server.URL+"/api/auth/register", body))
	var out struct {
		TenantID string `json:"tenantId"`
		UserID   string `json:"userId"`
		Token    string `json:"token"`
	}
	decodeData(t, resp, http.StatusCreated, &out)
	require.NotEmpty(t, out.Token)

	return tenantSession{TenantID: out.TenantID, UserID: out.UserID, Token: out.Token}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

// decodeData asserts the status and a successful envelope, then decodes data.
func decodeData(t *testing.T, resp *http.Response, status int, dst any) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, status, resp.StatusCode, string(raw))

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.True(t, env.Success, string(raw))
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
}

// decodeError asserts the status and returns the error code.
func decodeError(t *testing.T, resp *http.Response, status int) string {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, status, resp.StatusCode, string(raw))

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func newAuthRequest(t *testing.T, method string, url string, body []byte, accessToken string) *http.Request {
	t.Helper()

	req := mustNewRequest(t, method, url, body)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return req
}

func doRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := noRedirectClient.Do(req)
	require.NoError(t, err)
	return resp
}

func doAuthJSONRequest(t *testing.T, method string, url string, body []byte, accessToken string) *http.Response {
	t.Helper()

	return doRequest(t, newAuthRequest(t, method, url, body, accessToken))
}

func doAuthRequest(t *testing.T, method string, url string, accessToken string) *http.Response {
	t.Helper()

	return doRequest(t, newAuthRequest(t, method, url, nil, accessToken))
}

func mustNewRequest(t *testing.T, method string, url string, body []byte) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

var noRedirectClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}
