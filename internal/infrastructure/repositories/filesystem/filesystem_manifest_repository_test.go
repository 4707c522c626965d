//go:build unit

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/infrastructure/repositories/filesystem"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManifestRepositoryLocate(t *testing.T) {
	t.Parallel()

	t.Run("should find nested manifests and skip node_modules", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "packages", "b", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "node_modules", "left-pad", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "packages", "a", "node_modules", "x", "package.json"), `{}`)
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(filepath.Join(root, "**", "package.json"), nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "package.json"),
			filepath.Join(root, "packages", "a", "package.json"),
			filepath.Join(root, "packages", "b", "package.json"),
		}, paths)
	})

	t.Run("should apply additional exclude patterns", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "packages", "legacy", "package.json"), `{}`)
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(
			filepath.Join(root, "packages", "*", "package.json"),
			[]string{filepath.Join(root, "packages", "legacy", "**")},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "packages", "a", "package.json")}, paths)
	})

	t.Run("should return an empty list when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(filepath.Join(root, "**", "package.json"), nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("should skip hidden directories the pattern does not name", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, ".turbo", "cache", "package.json"), `{}`)
		writeFile(t, filepath.Join(root, "packages", "a", ".output", "package.json"), `{}`)
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(filepath.Join(root, "**", "package.json"), nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "packages", "a", "package.json")}, paths)
	})

	t.Run("should include a hidden directory named by the pattern", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "tools", ".config", "package.json"), `{}`)
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate(filepath.Join(root, "*", ".config", "package.json"), nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "tools", ".config", "package.json")}, paths)
	})

	t.Run("should fail with a discovery error when a directory cannot be read", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced for root")
		}

		// given
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a", "package.json"), `{}`)
		locked := filepath.Join(root, "locked")
		writeFile(t, filepath.Join(locked, "b", "package.json"), `{}`)
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })
		repo := filesystem.NewManifestRepository()
		pattern := filepath.Join(root, "**", "package.json")

		// when
		paths, err := repo.Locate(pattern, nil)

		// then
		var discoveryErr *entities.DiscoveryError
		require.ErrorAs(t, err, &discoveryErr)
		assert.Equal(t, pattern, discoveryErr.Pattern)
		assert.Nil(t, paths)
	})

	t.Run("should fail with a discovery error on a malformed pattern", func(t *testing.T) {
		t.Parallel()

		// given
		repo := filesystem.NewManifestRepository()

		// when
		paths, err := repo.Locate("packages/[/package.json", nil)

		// then
		var discoveryErr *entities.DiscoveryError
		require.ErrorAs(t, err, &discoveryErr)
		assert.Equal(t, "packages/[/package.json", discoveryErr.Pattern)
		assert.Nil(t, paths)
	})
}

func TestManifestRepositoryLoad(t *testing.T) {
	t.Parallel()

	t.Run("should load a manifest with its raw content", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "package.json")
		content := "{\n  \"name\": \"x\",\n  \"version\": \"1.0.0\"\n}\n"
		writeFile(t, path, content)
		repo := filesystem.NewManifestRepository()

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, content, manifest.Content)
		assert.Equal(t, "x", manifest.Name)
	})

	t.Run("should return a read error for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "package.json")
		repo := filesystem.NewManifestRepository()

		// when
		_, err := repo.Load(path)

		// then
		var readErr *entities.ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, path, readErr.Path)
	})

	t.Run("should return a parse error for invalid JSON", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "package.json")
		writeFile(t, path, `{"name": `)
		repo := filesystem.NewManifestRepository()

		// when
		_, err := repo.Load(path)

		// then
		var parseErr *entities.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, path, parseErr.Path)
	})
}

func TestManifestRepositorySave(t *testing.T) {
	t.Parallel()

	t.Run("should replace the content and keep permissions", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "package.json")
		writeFile(t, path, `{"name": "old-and-longer-content"}`)
		require.NoError(t, os.Chmod(path, 0o600))
		repo := filesystem.NewManifestRepository()

		// when
		err := repo.Save(path, `{"name": "new"}`)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{"name": "new"}`, string(data))
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should return a write error when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing", "package.json")
		repo := filesystem.NewManifestRepository()

		// when
		err := repo.Save(path, `{}`)

		// then
		var writeErr *entities.WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, path, writeErr.Path)
	})
}
