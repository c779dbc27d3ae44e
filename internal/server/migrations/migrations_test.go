package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_users.sql", "00002_create_photos.sql"}, names)

	for _, n := range names {
		b, err := Migrations.ReadFile(n)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "-- +goose Up"), n)
		assert.True(t, strings.Contains(string(b), "-- +goose Down"), n)
	}
}

func TestMigrations_UsernameIsPrimaryKey(t *testing.T) {
	b, err := Migrations.ReadFile("00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "username      TEXT PRIMARY KEY")
}
