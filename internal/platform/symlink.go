package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CreateSymlink creates a symbolic link at link pointing to target. The
// target may be relative; hook links use relative targets so the repository
// can be moved without breaking them. On Windows it attempts os.Symlink
// first (requires developer mode), then falls back to copying the target
// and recording it in a .target sidecar file.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyFallback(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// Sidecar lets ReadSymlinkTarget recover the original target. The copy
	// already succeeded, so a sidecar write failure is not fatal.
	sidecar := link + ".target"
	_ = os.WriteFile(sidecar, []byte(target), 0644)
	return nil
}

// RemoveSymlink removes a symlink, or its fallback copy and sidecar.
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + ".target") // best-effort
	return err
}

// ReadSymlinkTarget returns the target a symlink points at, without
// resolving it. On Windows, if os.Readlink fails because the copy fallback
// was used, the target is read from the .target sidecar instead.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + ".target")
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path itself is a symbolic link (not whether it
// resolves). It does not follow the link.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// IsSymlinkSupported returns true if the current platform supports native
// symlinks. On Windows this attempts a test symlink to detect developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".chronicle-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}

// copyFallback copies src to dst. A relative src is resolved against the
// directory containing dst, matching how a relative symlink would resolve.
func copyFallback(src, dst string) error {
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
