package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/devika/tutora/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	t.Run("update available", func(t *testing.T) {
		server := newReleaseServer(t, `{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`, http.StatusOK)
		checker := NewChecker(WithBaseURL(server.URL))

		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
		assert.Equal(t, "v2.0.0", result.LatestVersion)
		assert.Equal(t, "https://example.com/v2.0.0", result.ReleaseURL)
	})

	t.Run("already latest", func(t *testing.T) {
		server := newReleaseServer(t, `{"tag_name":"v1.0.0","html_url":"https://example.com/v1.0.0"}`, http.StatusOK)
		checker := NewChecker(WithBaseURL(server.URL))

		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("missing v prefix tolerated", func(t *testing.T) {
		server := newReleaseServer(t, `{"tag_name":"v1.1.0","html_url":"https://example.com/v1.1.0"}`, http.StatusOK)
		checker := NewChecker(WithBaseURL(server.URL))

		result, err := checker.Check(context.Background(), &CheckInput{Version: "1.0.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
	})

	t.Run("dev build never reports an update", func(t *testing.T) {
		server := newReleaseServer(t, `{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`, http.StatusOK)
		checker := NewChecker(WithBaseURL(server.URL))

		result, err := checker.Check(context.Background(), &CheckInput{Version: "(devel)"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("server error", func(t *testing.T) {
		server := newReleaseServer(t, `oops`, http.StatusInternalServerError)
		checker := NewChecker(WithBaseURL(server.URL))

		_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})
}
