// Package archive scans configured directories of markdown posts and renders
// the archive index from a template. A post's title comes from its first
// heading and its date from the filename's YYYY-MM-DD prefix. All paths are
// resolved against an explicit base directory so generation behaves the same
// whether the tool was run by hand or through a .git/hooks symlink.
package archive
