package logging

import (
	"context"
	"log/slog"
	"os"
	"strconv"
)

type requestLoggerContextKey struct{}

var fallbackLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("logger", "fallback"))

// FromContext returns the request logger stored in ctx, or a fallback logger
// writing JSON to stdout
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallbackLogger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerContextKey{}, logger)
}

// AddMetaToContext stores a logger with attrs added to every record
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return AddToContext(ctx, FromContext(ctx).With(args...))
}

func SnapshotVersionAttr(version string) slog.Attr {
	return slog.String("snapshotVersion", version)
}

// YearAttr logs the year 0 as all-time
func YearAttr(year int) slog.Attr {
	if year == 0 {
		return slog.String("year", "all-time")
	}
	return slog.String("year", strconv.Itoa(year))
}

func MetricAttr(metric string) slog.Attr {
	return slog.String("metric", metric)
}

func BandAttr(band int) slog.Attr {
	return slog.Int("band", band)
}

func RankingKindAttr(kind string) slog.Attr {
	return slog.String("rankingKind", kind)
}
