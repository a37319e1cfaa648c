// Package platform provides cross-platform filesystem primitives for hook
// installation: symlink creation and executable permission bits. On Unix it
// uses native symlinks and chmod directly. On Windows it falls back to file
// copying with a .target sidecar when developer mode symlinks are unavailable.
package platform
