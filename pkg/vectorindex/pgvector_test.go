package vectorindex

import (
	"context"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm handle that only renders SQL, so statement
// shape can be asserted without a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestNearestQuery_OrdersBySimilarityScore(t *testing.T) {
	idx := NewPgVectorIndex(newDryRunDB(t))

	type result struct {
		VectorRecord
		Score float64
	}
	var results []result
	tx := idx.nearestQuery(context.Background(), pgvector.NewVector([]float32{1, 0, 0}), 3).Scan(&results)
	// DryRun renders the SQL but Scan cannot execute it, so gorm reports
	// ErrDryRunModeUnsupported; any other error means the build failed.
	require.ErrorIs(t, tx.Error, gorm.ErrDryRunModeUnsupported)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "1 - (embedding <=> ")
	assert.Contains(t, sql, "ORDER BY score DESC")
	assert.Contains(t, sql, "LIMIT")
}
