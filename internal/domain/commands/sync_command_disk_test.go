//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgsync/internal/domain/commands"
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	infraRepos "github.com/rios0rios0/pkgsync/internal/infrastructure/repositories"
	"github.com/rios0rios0/pkgsync/internal/infrastructure/repositories/filesystem"
	doubles "github.com/rios0rios0/pkgsync/test/infrastructure/repositorydoubles"
)

func TestSyncCommandExecuteOnDisk(t *testing.T) {
	t.Parallel()

	t.Run("should rewrite one manifest and leave the others byte-identical", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		original := map[string]string{
			"core": "{\n  \"name\": \"@acme/core\",\n  \"version\": \"2.1.0\",\n  \"license\": \"MIT\"\n}\n",
			"utils": "{\n\t\"name\": \"@acme/utils\",\n\t\"version\": \"0.3.0\",\n\t\"dependencies\": {\n" +
				"\t\t\"@acme/core\": \"^2.1.0\"\n\t}\n}\n",
			"app": "{\n  \"name\": \"app\",\n  \"private\": true,\n  \"dependencies\": {\n" +
				"    \"@acme/core\" : \"^2.0.0\",\n    \"@acme/utils\": \"0.3.0\",\n" +
				"    \"left-pad\": \"^1.3.0\"\n  },\n  \"scripts\": { \"build\": \"tsc\" }\n}\n",
		}
		for dir, content := range original {
			path := filepath.Join(root, "packages", dir, "package.json")
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}
		cache := filepath.Join(root, "packages", "app", "node_modules", "@acme", "core", "package.json")
		require.NoError(t, os.MkdirAll(filepath.Dir(cache), 0o755))
		require.NoError(t, os.WriteFile(cache, []byte(`{"name": "@acme/core", "version": "0.0.1"}`), 0o644))

		publisher := &doubles.SpyPublisherRepository{PublisherName: "git"}
		registry := infraRepos.NewPublisherRegistry()
		registry.Register(publisher)
		cmd := commands.NewSyncCommand(filesystem.NewManifestRepository(), registry)

		settings := entities.NewDefaultSettings()
		settings.PackagesPath = filepath.Join(root, "**", "package.json")

		// when
		result, err := cmd.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, result.Scanned)
		require.Len(t, result.Inconsistent, 1)
		require.Len(t, result.Inconsistent[0].Reasons, 1)

		appPath := filepath.Join(root, "packages", "app", "package.json")
		assert.Equal(t, []string{appPath}, result.Written)

		for dir, content := range original {
			data, readErr := os.ReadFile(filepath.Join(root, "packages", dir, "package.json"))
			require.NoError(t, readErr)
			if dir == "app" {
				expected := "{\n  \"name\": \"app\",\n  \"private\": true,\n  \"dependencies\": {\n" +
					"    \"@acme/core\" : \"^2.1.0\",\n    \"@acme/utils\": \"0.3.0\",\n" +
					"    \"left-pad\": \"^1.3.0\"\n  },\n  \"scripts\": { \"build\": \"tsc\" }\n}\n"
				assert.Equal(t, expected, string(data))
				continue
			}
			assert.Equal(t, content, string(data), "%s should be untouched", dir)
		}

		require.Len(t, publisher.PublishInputs, 1)
		assert.Equal(t, []string{appPath}, publisher.PublishInputs[0].ChangedPaths)
	})
}
