package logging_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/logging"
)

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		method  string
		target  string
		headers map[string]string
		want    map[string]any
	}{
		{
			name:   "all props",
			method: "GET",
			target: "/v1/milestones?year=2024&metric=hours",
			headers: map[string]string{
				"X-User-Id":  "user-id",
				"User-Agent": "user-agent/1.0",
			},
			want: map[string]any{
				"methodPath": "GET /v1/milestones",
				"query":      "year=2024&metric=hours",
				"userId":     "user-id",
				"userAgent":  "user-agent/1.0",
			},
		},
		{
			name:   "no params",
			method: "OPTIONS",
			target: "/v1/years",
			want: map[string]any{
				"methodPath": "OPTIONS /v1/years",
				"query":      "",
				"userId":     "<missing>",
				"userAgent":  "<missing>",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			middleware := logging.NewRequestLoggerMiddleware(slog.New(slog.NewJSONHandler(buf, nil)))
			handler := middleware(func(w http.ResponseWriter, r *http.Request) {
				logging.FromContext(r.Context()).Info("test")
			})

			req := httptest.NewRequest(c.method, c.target, nil)
			req.Header.Del("User-Agent")
			for key, value := range c.headers {
				req.Header.Set(key, value)
			}
			handler(httptest.NewRecorder(), req)

			want := map[string]any{"level": "INFO", "msg": "test"}
			for key, value := range c.want {
				want[key] = value
			}
			require.Equal(t, []map[string]any{want}, records(t, buf))
		})
	}

	t.Run("without middleware", func(t *testing.T) {
		t.Parallel()

		logging.FromContext(t.Context()).Info("don't crash when no logger in context")
	})
}
