// Package database provides SQLite-based storage for uniscout.
//
// The store keeps two kinds of rows:
//   - fetched content (HTML markup and document bytes) keyed by fetch key,
//     so a warm run never touches the network
//   - comparison rows of past runs, for the history command
//
// Design decision: the per-stage artifacts stay as JSON files under the
// cache directory because they are meant to be read and edited by hand.
// Raw content is binary and large, so it lives here instead.
package database
