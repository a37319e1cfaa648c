package platform

import (
	"fmt"
	"os"
	"runtime"
)

// HookPerm is the permission mode git requires for hook files to run.
const HookPerm os.FileMode = 0755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// IsExecutable reports whether the file at path has any execute bit set.
// Always true on Windows.
func IsExecutable(path string) (bool, error) {
	if runtime.GOOS == "windows" {
		return true, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode()&0111 != 0, nil
}
