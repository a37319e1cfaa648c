package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Self is a snapshot of where the running binary lives, captured once at
// process start. Pass it down to anything that needs a base directory
// instead of re-deriving it from os.Args later.
type Self struct {
	// Invocation is the path the process was started with, before any
	// symlink dereferencing. May be relative, may be a bare command name
	// found via PATH, may point at a symlink.
	Invocation string

	// Physical is the absolute path of the executable with every symbolic
	// link fully dereferenced.
	Physical string

	// Dir is the directory containing Physical. For a hook installed as
	// .git/hooks/pre-commit -> ../../tools/chronicle this is the tools
	// directory, not .git/hooks.
	Dir string
}

// Resolve captures the executing binary's invocation and physical paths.
func Resolve() (Self, error) {
	exe, err := os.Executable()
	if err != nil {
		return Self{}, fmt.Errorf("locating executable: %w", err)
	}
	phys, err := Physical(exe)
	if err != nil {
		return Self{}, err
	}
	return Self{
		Invocation: os.Args[0],
		Physical:   phys,
		Dir:        filepath.Dir(phys),
	}, nil
}

// Physical returns the absolute path of p with every symbolic link in it
// fully dereferenced. It queries the filesystem and fails when the final
// target does not exist, unlike Lexical which never performs a lookup.
// Resolving an already fully resolved path returns it unchanged.
func Physical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("making %s absolute: %w", p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return resolved, nil
}

// Lexical returns p joined with the working directory and cleaned of "."
// and ".." segments. It is a pure string transform: no existence check, no
// symlink dereferencing. A dangling or relocated link still yields a
// syntactically valid path here, which is exactly why base directories must
// come from Physical instead.
func Lexical(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Clean(p)
	}
	return filepath.Join(wd, p)
}

// IsNotFound reports whether err came from resolving a path whose final
// target does not exist on the filesystem.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
