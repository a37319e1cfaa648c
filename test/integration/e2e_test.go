//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/chronicle-dev/chronicle/internal/config"
	"github.com/chronicle-dev/chronicle/internal/hook"
	"github.com/chronicle-dev/chronicle/internal/paths"
)

// TestFullFlowGenerateAndHook covers the complete lifecycle: generate the
// archive, install the hook link, verify the hook resolves to the script's
// physical location, detect staleness after a new post, and uninstall.
func TestFullFlowGenerateAndHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires native symlinks")
	}
	env := setupBlog(t)

	// Step 1: generate the archive.
	gen := newGenerator(t, env)
	if err := gen.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertFileExists(t, filepath.Join(env.Root, "archive.md"))

	data, err := os.ReadFile(filepath.Join(env.Root, "archive.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"- [Symlinks and hooks](./posts/2024-03-01-go-paths.md) <small>(2024-03-01)</small>",
		"- [2024-02-20](./slogs/2024-02-20.md)",
		"_Updated: 2024-03-10 12:00:00_",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("archive missing %q\n---\n%s", want, data)
		}
	}

	// Step 2: install the hook pointing at tools/generate.
	if err := hook.Install(env.Root, env.Script, hook.DefaultName, false); err != nil {
		t.Fatalf("Install: %v", err)
	}

	info, err := hook.Status(env.Root, hook.DefaultName)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if info.State != hook.StateLinked {
		t.Fatalf("hook state = %q, want %q", info.State, hook.StateLinked)
	}

	// Step 3: resolving the hook path physically lands in tools/, not
	// .git/hooks — the base-directory derivation the hook relies on.
	resolved, err := paths.Physical(info.Path)
	if err != nil {
		t.Fatalf("Physical: %v", err)
	}
	wantScript, err := paths.Physical(env.Script)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != wantScript {
		t.Errorf("hook resolves to %q, want %q", resolved, wantScript)
	}
	if filepath.Base(filepath.Dir(resolved)) != "tools" {
		t.Errorf("hook base dir = %q, want tools/", filepath.Dir(resolved))
	}

	// Step 4: freshly generated archive is not stale; adding a post makes it so.
	stale, err := gen.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if stale {
		t.Error("archive stale right after generation")
	}
	newPost := filepath.Join(env.Root, "posts", "2024-03-09-new.md")
	if err := os.WriteFile(newPost, []byte("# Brand new\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stale, err = gen.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if !stale {
		t.Error("archive not stale after adding a post")
	}

	// Step 5: uninstall removes the link but nothing else.
	if err := hook.Uninstall(env.Root, hook.DefaultName); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	assertFileExists(t, env.Script)
}

// TestHookSurvivesInvocationThroughLink simulates the failure mode the tool
// exists for: the script is reachable only through the hook symlink, and the
// config must still be found from the script's physical directory.
func TestHookSurvivesInvocationThroughLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires native symlinks")
	}
	env := setupBlog(t)
	t.Setenv("CHRONICLE_CONFIG", "")

	if err := hook.Install(env.Root, env.Script, hook.DefaultName, false); err != nil {
		t.Fatalf("Install: %v", err)
	}
	hookPath := filepath.Join(env.Root, ".git", "hooks", hook.DefaultName)

	// Run from a directory with no config, the way a detached process might.
	chdir(t, t.TempDir())

	// Derive the base directory the way generate does: from the physical
	// location behind the invocation path.
	phys, err := paths.Physical(hookPath)
	if err != nil {
		t.Fatalf("Physical: %v", err)
	}
	self := paths.Self{Invocation: hookPath, Physical: phys, Dir: filepath.Dir(phys)}

	cfgPath, err := config.Locate("", self)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	wantCfg, err := paths.Physical(env.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	gotCfg, err := paths.Physical(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if gotCfg != wantCfg {
		t.Errorf("Locate = %q, want %q", gotCfg, wantCfg)
	}

	// The lexical view of the invocation path would have looked in
	// .git/hooks and found nothing.
	lexDir := filepath.Dir(paths.Lexical(hookPath))
	if _, err := os.Stat(filepath.Join(lexDir, "chronicle.yaml")); err == nil {
		t.Fatal("test setup broken: config present in .git/hooks")
	}
}

// TestBrokenHookDetected moves the script out from under the link and checks
// the failure surfaces instead of being silently ignored.
func TestBrokenHookDetected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires native symlinks")
	}
	env := setupBlog(t)

	if err := hook.Install(env.Root, env.Script, hook.DefaultName, false); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if err := os.Rename(env.Script, env.Script+".moved"); err != nil {
		t.Fatal(err)
	}

	info, err := hook.Status(env.Root, hook.DefaultName)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if info.State != hook.StateBroken {
		t.Errorf("hook state = %q, want %q", info.State, hook.StateBroken)
	}

	hookPath := filepath.Join(env.Root, ".git", "hooks", hook.DefaultName)
	if _, err := paths.Physical(hookPath); !paths.IsNotFound(err) {
		t.Errorf("Physical on dangling hook: err = %v, want not-found", err)
	}
	// The lexical normalizer keeps returning a clean path for the same input.
	if got := paths.Lexical(hookPath); got != hookPath {
		t.Errorf("Lexical = %q, want %q", got, hookPath)
	}
}

// chdir changes the working directory for the duration of the test; it stands
// in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}
