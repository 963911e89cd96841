// Package workspace manages per-run scratch directories.
//
// A Workspace is created by the caller at the start of a run and closed on every exit
// path (typically with defer). Downloaded sources and encoded outputs are spooled here
// instead of a fixed shared directory.
package workspace
