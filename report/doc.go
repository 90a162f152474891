// Package report persists the outcome of a patch run as indented JSON.
//
// Only paths, statuses and counters are stored; file contents never are.
package report
