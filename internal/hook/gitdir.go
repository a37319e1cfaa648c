package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GitDir locates the .git directory for the repository containing start,
// walking upward through parent directories. It handles the worktree and
// submodule form where .git is a file containing "gitdir: <path>".
func GitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("making %s absolute: %w", start, err)
	}

	for {
		candidate := filepath.Join(dir, ".git")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return readGitFile(candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no git repository found at or above %s", start)
		}
		dir = parent
	}
}

// HooksDir returns the hooks directory for the repository containing repoRoot.
func HooksDir(repoRoot string) (string, error) {
	gitDir, err := GitDir(repoRoot)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// readGitFile parses a .git pointer file ("gitdir: <path>") as written by
// git worktree and submodules. A relative path is resolved against the
// directory containing the pointer file.
func readGitFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading git pointer file %s: %w", path, err)
	}

	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("malformed git pointer file %s", path)
	}

	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}
