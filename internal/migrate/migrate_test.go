package migrate_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/migrate"
	"storefront/internal/repository/repotest"
)

func TestRollbackAndReapply(t *testing.T) {
	if os.Getenv("TEST_DB_DSN") != "" {
		t.Skip("rolls back the schema; needs a private container database")
	}
	ctx := context.Background()
	pool := repotest.Pool(t)

	v, dirty, err := migrate.Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.False(t, dirty)

	require.NoError(t, migrate.Rollback(ctx, pool, 1))
	v, _, err = migrate.Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	require.NoError(t, migrate.Apply(ctx, pool))
	v, _, err = migrate.Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)

	assert.Error(t, migrate.Rollback(ctx, pool, 0))
}
