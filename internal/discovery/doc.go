// Package discovery finds candidate curriculum URLs for an institution
// through web search providers.
//
// A Discoverer asks a primary provider (Serper) and falls back to a second
// provider (DuckDuckGo HTML results read through a browser session) when the
// primary fails or has nothing to offer. Discovery never fails: when both
// providers fail the result is simply empty.
package discovery
