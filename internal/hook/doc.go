// Package hook installs chronicle into a git repository's hook directory as
// a symbolic link and reports on the health of that link. Links are created
// with relative targets so the repository can be relocated, and a hook that
// no longer resolves (its target was moved or deleted) is reported as broken
// rather than silently ignored.
package hook
