// Package config loads and validates the project-level chronicle.yaml file
// that describes a blog's archive layout: which directories hold posts, where
// the archive index and its template live, and how many recent entries to
// surface. Raw config bytes can be checked against an embedded JSON schema
// before use.
package config
