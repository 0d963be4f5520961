package reporting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/reporting"
)

func TestMetaFromContextIsolation(t *testing.T) {
	t.Parallel()

	ctx := reporting.AddTagsToContext(t.Context(), map[string]string{"endpoint": "summary"})
	child := reporting.AddTagsToContext(ctx, map[string]string{"endpoint": "activity"})
	child = reporting.AddExtrasToContext(child, map[string]string{"year": "2024"})

	// Adding to a derived context must not leak into the parent
	parentAgain := reporting.AddTagsToContext(ctx, nil)
	require.NotEqual(t, reporting.MetaFromContext(child), reporting.MetaFromContext(parentAgain))
	require.Equal(t, reporting.MetaFromContext(ctx), reporting.MetaFromContext(parentAgain))
}

func TestSetSnapshotVersionInContext(t *testing.T) {
	t.Parallel()

	ctx := reporting.AddTagsToContext(t.Context(), map[string]string{"endpoint": "hindex"})
	versioned := reporting.SetSnapshotVersionInContext(ctx, "abc123")

	require.NotEqual(t, reporting.MetaFromContext(ctx), reporting.MetaFromContext(versioned))
	require.Equal(t,
		reporting.MetaFromContext(reporting.SetSnapshotVersionInContext(ctx, "abc123")),
		reporting.MetaFromContext(versioned),
	)
}

func TestMetaFromContextEmpty(t *testing.T) {
	t.Parallel()

	// Adding to an empty context must work without a prior meta
	ctx := reporting.AddExtrasToContext(t.Context(), map[string]string{"query": "year=2024"})
	ctx = reporting.SetUserIDInContext(ctx, "user-1")

	require.NotEqual(t, reporting.MetaFromContext(t.Context()), reporting.MetaFromContext(ctx))
}
