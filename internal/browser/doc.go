// Package browser provides rendered page content through a scoped session.
//
// A Launcher starts a Session; a Session is not safe for concurrent use by
// several workers, so every worker launches its own. With guarantees the
// session is closed when the work function returns, even on error.
//
// Two launchers are provided: Chrome drives a headless Chrome through the
// DevTools protocol, and HTTP fetches raw markup for environments without a
// browser.
package browser
