package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newRevokerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&TokenBlacklistModel{}))
	return db
}

func TestDBRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewDBRevoker(newRevokerDB(t))
	r.Now = func() time.Time { return now }

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	// second logout of the same token is a no-op
	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "jti-old", now.Add(-time.Minute)))

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := r.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestDBRevokerIgnoresBlankID(t *testing.T) {
	r := NewDBRevoker(newRevokerDB(t))
	require.NoError(t, r.Revoke(context.Background(), " ", time.Now().Add(time.Hour)))
	revoked, err := r.IsRevoked(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
