package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0o644))
}

func TestList(t *testing.T) {
	t.Run("pairs are listed once by base name", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "000001_init.up.sql")
		writeFile(t, dir, "000001_init.down.sql")
		writeFile(t, dir, "000002_add_users.up.sql")
		writeFile(t, dir, "000002_add_users.down.sql")
		writeFile(t, dir, "README.md")

		migrations, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_add_users"}, migrations)
	})

	t.Run("missing directory yields an empty list", func(t *testing.T) {
		migrations, err := List(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
