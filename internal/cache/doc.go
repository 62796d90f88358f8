// Package cache persists pipeline artifacts as one JSON file per
// institution and stage.
//
// Artifacts are keyed by an institution slug and an artifact kind and live at
// <dir>/<kind>_<slug>.json. A present, parseable artifact short-circuits its
// stage unless the caller asks for a refresh. Artifacts never expire.
//
// Writes replace the whole file through a temporary file and a rename, so a
// reader never observes a partially written artifact. Refreshes of the same
// artifact are serialized by a keyed lock; different institutions never
// contend.
package cache
