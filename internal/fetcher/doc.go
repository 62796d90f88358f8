// Package fetcher retrieves the content of candidate URLs.
//
// Structured documents are downloaded directly. Other URLs are rendered
// through a browser session, and when that fails the same URL is retried as a
// document download. Fetch never returns an error: every attempt produces a
// telemetry entry, and a failed attempt simply contributes no lines.
//
// Raw markup and document bytes are cached by a hash of the URL. Cached
// entries never expire and a hit performs no network or browser work.
package fetcher
