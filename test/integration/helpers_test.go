//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chronicle-dev/chronicle/internal/archive"
	"github.com/chronicle-dev/chronicle/internal/config"
)

// blogEnv holds the pieces of a synthetic blog repository.
type blogEnv struct {
	Root       string // repo root with .git/, posts/, slogs/, tools/
	ConfigPath string // Root/chronicle.yaml
	Script     string // Root/tools/generate, the hook target
}

const blogConfig = `archive_file: archive.md
template_file: templates/archive.md
recents: 3
sections:
  - title: Posts
    dir: posts
    description: Longer writeups
  - title: Stream
    dir: slogs
    plain_dates: true
`

const blogTemplate = `# Archive

## Recents
{{.Recents}}

{{.Body}}
_Updated: {{.UpdatedAt}}_
`

// setupBlog creates a git-like repository with two post sections, a config,
// a template, and a tools/generate script to link hooks against.
func setupBlog(t *testing.T) *blogEnv {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"chronicle.yaml":               blogConfig,
		"templates/archive.md":         blogTemplate,
		"posts/2024-03-01-go-paths.md": "# Symlinks and hooks\n",
		"posts/2024-01-15-first.md":    "# First post\n",
		"slogs/2024-02-20.md":          "# 2024-02-20\n",
		"tools/generate":               "#!/bin/sh\nexec chronicle generate --check\n",
		".git/hooks/.keep":             "",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Chmod(filepath.Join(root, "tools", "generate"), 0755); err != nil {
		t.Fatal(err)
	}

	return &blogEnv{
		Root:       root,
		ConfigPath: filepath.Join(root, "chronicle.yaml"),
		Script:     filepath.Join(root, "tools", "generate"),
	}
}

// newGenerator loads the env's config and returns a Generator with a fixed
// clock.
func newGenerator(t *testing.T, env *blogEnv) *archive.Generator {
	t.Helper()

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	g := archive.New(env.Root, cfg)
	g.Now = func() time.Time {
		return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
}
