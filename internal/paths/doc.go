// Package paths distinguishes the path a process was invoked with from the
// physical location of the file behind it. When the binary runs as a
// .git/hooks/pre-commit symlink, the invocation path points into .git/hooks
// while the actual file lives elsewhere; everything that derives a base
// directory must use the physical path.
package paths
