package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestRequiresConnectionFlags(t *testing.T) {
	unsetEnv(t, "PORTAL_URL", "PORTAL_API_KEY")

	err := newApp(zap.NewNop()).Run([]string{"portalctl", "check"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}

func TestCreateAdmin(t *testing.T) {
	unsetEnv(t, "PORTAL_URL", "PORTAL_API_KEY", "PORTAL_SERVICE_KEY", "PORTAL_ADMIN_PASSWORD", "PORTAL_TOKEN_FILE")

	run := func(t *testing.T, url string) error {
		return newApp(zap.NewNop()).Run([]string{
			"portalctl",
			"--url", url,
			"--api-key", "public",
			"--token-file", filepath.Join(t.TempDir(), "s.json"),
			"create-admin",
			"--email", "root@example.org",
			"--password", "s3cret-pass",
			"--name", "Root Admin",
			"--service-key", "svc",
		})
	}

	t.Run("sends the service key and admin role", func(t *testing.T) {
		var got domain.SignUpInput
		var serviceKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth/signup" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			serviceKey = r.Header.Get("X-Service-Key")
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(domain.AuthResult{
				Profile: &domain.Profile{ID: uuid.New(), FullName: got.FullName, Role: got.Role},
			})
		}))
		defer srv.Close()

		require.NoError(t, run(t, srv.URL))
		assert.Equal(t, "svc", serviceKey)
		assert.Equal(t, domain.RoleAdmin, got.Role)
		assert.Equal(t, "root@example.org", got.Email)
		assert.Equal(t, "Root Admin", got.FullName)
	})

	t.Run("reports the API error code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "FORBIDDEN", "message": "invalid service key"})
		}))
		defer srv.Close()

		err := run(t, srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FORBIDDEN")
		assert.Contains(t, err.Error(), "invalid service key")
	})
}
