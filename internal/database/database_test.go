package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "tourist_sites", "hotels", "bookings", "booking_histories", "reviews", "favorites", "refresh_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}
