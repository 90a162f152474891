// Package runner drives one schema-patching pass over a directory tree.
//
// Flow:
//
//	open root -> walk files by extension -> per file: read, precheck, patch,
//	(verify), write -> summary
//
// A missing root is the only fatal error. Every per-file failure is printed
// to the error writer, recorded in the summary and the walk moves on.
// Files are processed one at a time in walk order; cancellation is observed
// between files.
package runner
