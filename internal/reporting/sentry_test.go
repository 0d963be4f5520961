package reporting

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	t.Run("connection reset by peer", func(t *testing.T) {
		t.Parallel()

		err := `failed to load snapshot: read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:5432: read: connection reset by peer`
		want := `failed to load snapshot: read tcp <host>-><host>: read: connection reset by peer`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("snapshot version", func(t *testing.T) {
		t.Parallel()

		version := strings.Repeat("0123456789abcdef", 4)
		err := fmt.Sprintf("failed to compute milestones for snapshot %s: boom", version)
		want := "failed to compute milestones for snapshot <version>: boom"
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("snapshot path", func(t *testing.T) {
		t.Parallel()

		err := `failed to read snapshot: open /var/data/my-collection.v2.json: permission denied`
		want := `failed to read snapshot: open <path>: permission denied`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		ips := []string{
			`1:2:3:4:5:6:7:8`,
			`1::`,
			`1:2:3:4:5:6:7::`,
			`1::8`,
			`1:2:3:4:5:6::8`,
			`1::7:8`,
			`1:2:3:4:5::7:8`,
			`1::6:7:8`,
			`1:2:3:4::6:7:8`,
			`1::5:6:7:8`,
			`1:2:3::5:6:7:8`,
			`1::4:5:6:7:8`,
			`1:2::4:5:6:7:8`,
			`1::3:4:5:6:7:8`,
			`::2:3:4:5:6:7:8`,
			`::8`,
			`::`,
		}
		for _, ip := range ips {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})
	t.Run("short hex is kept", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "game deadbeef not found", sanitizeError("game deadbeef not found"))
	})
}

func TestAddMetaMiddleware(t *testing.T) {
	t.Parallel()

	var meta ReportingMeta
	handler := NewAddMetaMiddleware("milestones")(func(w http.ResponseWriter, r *http.Request) {
		meta = MetaFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/v1/milestones?year=2024&metric=hours", nil)
	req.Header.Set("User-Agent", "meeple-client/1.0")
	req.Header.Set("X-User-Id", "user-1")
	handler(httptest.NewRecorder(), req)

	require.Equal(t, map[string]string{
		"endpoint":   "milestones",
		"userAgent":  "meeple-client/1.0",
		"methodPath": "GET /v1/milestones",
		"year":       "2024",
		"metric":     "hours",
	}, meta.tags)
	require.Equal(t, map[string]string{"query": "year=2024&metric=hours"}, meta.extras)
	require.Equal(t, "user-1", meta.userID)
	require.False(t, meta.startedAt.IsZero())
}

func TestAddMetaMiddlewareDefaults(t *testing.T) {
	t.Parallel()

	var meta ReportingMeta
	handler := NewAddMetaMiddleware("years")(func(w http.ResponseWriter, r *http.Request) {
		meta = MetaFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/v1/years", nil)
	req.Header.Del("User-Agent")
	handler(httptest.NewRecorder(), req)

	require.Equal(t, "<missing>", meta.tags["userAgent"])
	require.Equal(t, "<default>", meta.tags["year"])
	require.Equal(t, "<default>", meta.tags["metric"])
	require.Empty(t, meta.userID)
}
