package logging_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/logging"
)

// records decodes the JSON lines in buf, dropping the time field
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	result := []map[string]any{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		require.Contains(t, record, "time")
		delete(record, "time")
		result = append(result, record)
	}
	require.NoError(t, scanner.Err())
	return result
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("stored logger", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		ctx := logging.AddToContext(t.Context(), logger)

		require.Same(t, logger, logging.FromContext(ctx))
	})

	t.Run("fallback", func(t *testing.T) {
		t.Parallel()

		fallback := logging.FromContext(t.Context())
		require.NotNil(t, fallback)
		require.Same(t, fallback, logging.FromContext(t.Context()))
	})
}

func TestAddMetaToContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	rootLogger := slog.New(slog.NewJSONHandler(buf, nil)).With(slog.String("port", "milestones"))
	ctx := logging.AddToContext(t.Context(), rootLogger)

	queryCtx := logging.AddMetaToContext(ctx,
		logging.YearAttr(2024),
		logging.MetricAttr("hours"),
		logging.BandAttr(2),
	)
	logging.FromContext(queryCtx).Info("computing")

	versionCtx := logging.AddMetaToContext(queryCtx, logging.SnapshotVersionAttr("abc"))
	logging.FromContext(versionCtx).Info("computed")

	// The parent context is unaffected
	logging.FromContext(ctx).Info("done")

	require.Equal(t, []map[string]any{
		{"level": "INFO", "msg": "computing", "port": "milestones", "year": "2024", "metric": "hours", "band": float64(2)},
		{"level": "INFO", "msg": "computed", "port": "milestones", "year": "2024", "metric": "hours", "band": float64(2), "snapshotVersion": "abc"},
		{"level": "INFO", "msg": "done", "port": "milestones"},
	}, records(t, buf))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.String("year", "2024"), logging.YearAttr(2024))
	require.Equal(t, slog.String("year", "all-time"), logging.YearAttr(0))
	require.Equal(t, slog.String("metric", "sessions"), logging.MetricAttr("sessions"))
	require.Equal(t, slog.Int("band", 3), logging.BandAttr(3))
	require.Equal(t, slog.String("rankingKind", "unique-players"), logging.RankingKindAttr("unique-players"))
	require.Equal(t, slog.String("snapshotVersion", "v1"), logging.SnapshotVersionAttr("v1"))
}
