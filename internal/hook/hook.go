package hook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chronicle-dev/chronicle/internal/paths"
	"github.com/chronicle-dev/chronicle/internal/platform"
)

// DefaultName is the hook chronicle installs itself as.
const DefaultName = "pre-commit"

// State describes the condition of an installed hook link.
type State string

const (
	// StateMissing means no hook file exists at all.
	StateMissing State = "missing"
	// StateLinked means the hook is a symlink that resolves to an existing target.
	StateLinked State = "linked"
	// StateBroken means the hook is a symlink whose target no longer exists.
	StateBroken State = "broken"
	// StateForeign means a regular file occupies the hook slot; chronicle
	// will not touch it without --force.
	StateForeign State = "foreign"
)

// Info reports the state of a single hook.
type Info struct {
	Path     string // the hook file inside the hooks directory
	State    State
	Target   string // raw symlink target, when the hook is a link
	Resolved string // fully resolved physical path, when it resolves
}

// Install creates hooks/<name> as a symlink pointing at target. The link is
// written with a relative target computed from the hooks directory. An
// existing hook is replaced only when it is already a symlink or when force
// is set; a foreign regular file is refused otherwise.
func Install(repoRoot, target, name string, force bool) error {
	hooksDir, err := HooksDir(repoRoot)
	if err != nil {
		return err
	}

	// The target must exist now: installing a hook that would be born
	// dangling defeats the point.
	physTarget, err := paths.Physical(target)
	if err != nil {
		if paths.IsNotFound(err) {
			return fmt.Errorf("hook target %s does not exist", target)
		}
		return err
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("creating hooks directory %s: %w", hooksDir, err)
	}

	hookPath := filepath.Join(hooksDir, name)
	if info, err := os.Lstat(hookPath); err == nil {
		isLink := info.Mode()&os.ModeSymlink != 0
		if !isLink && !force {
			return fmt.Errorf("%s exists and is not a symlink; use --force to replace it", hookPath)
		}
		if err := platform.RemoveSymlink(hookPath); err != nil {
			return fmt.Errorf("removing existing hook %s: %w", hookPath, err)
		}
	}

	// Compute the relative target against the resolved hooks dir so both
	// ends of the Rel call are physical paths.
	physHooks, err := paths.Physical(hooksDir)
	if err != nil {
		physHooks = hooksDir
	}
	rel, err := filepath.Rel(physHooks, physTarget)
	if err != nil {
		// Different volume or similar; fall back to the absolute target.
		rel = physTarget
	}

	if err := platform.CreateSymlink(rel, hookPath); err != nil {
		return fmt.Errorf("linking %s -> %s: %w", hookPath, rel, err)
	}

	// Git silently skips hooks without the execute bit.
	if err := platform.Chmod(physTarget, platform.HookPerm); err != nil {
		return fmt.Errorf("marking %s executable: %w", physTarget, err)
	}
	return nil
}

// Uninstall removes hooks/<name> if it is a symlink. Regular files are left
// alone so a hand-written hook is never deleted by accident.
func Uninstall(repoRoot, name string) error {
	hooksDir, err := HooksDir(repoRoot)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(hooksDir, name)
	info, err := os.Lstat(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no %s hook installed", name)
		}
		return fmt.Errorf("inspecting hook %s: %w", hookPath, err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is a regular file, not a chronicle link; remove it manually", hookPath)
	}

	if err := platform.RemoveSymlink(hookPath); err != nil {
		return fmt.Errorf("removing hook %s: %w", hookPath, err)
	}
	return nil
}

// Status inspects hooks/<name> and classifies it. A dangling link is
// detected by attempting full physical resolution, not by reading the link
// text: the link text stays syntactically valid after its target moves.
func Status(repoRoot, name string) (*Info, error) {
	hooksDir, err := HooksDir(repoRoot)
	if err != nil {
		return nil, err
	}

	info := &Info{Path: filepath.Join(hooksDir, name)}

	fi, err := os.Lstat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			info.State = StateMissing
			return info, nil
		}
		return nil, fmt.Errorf("inspecting hook %s: %w", info.Path, err)
	}

	if fi.Mode()&os.ModeSymlink == 0 {
		info.State = StateForeign
		return info, nil
	}

	if target, err := platform.ReadSymlinkTarget(info.Path); err == nil {
		info.Target = target
	}

	resolved, err := paths.Physical(info.Path)
	if err != nil {
		if paths.IsNotFound(err) {
			info.State = StateBroken
			return info, nil
		}
		return nil, err
	}

	info.State = StateLinked
	info.Resolved = resolved
	return info, nil
}
