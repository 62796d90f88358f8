// Package log provides slog loggers that never print credentials.
//
// The SecureHandler wraps any slog.Handler and masks:
//   - request headers carrying credentials (Authorization, X-Api-Key, Cookie)
//   - attributes named after the search and LLM keys (serper_api_key, llm_api_key)
//   - values that look like keys regardless of their attribute name
//     (Groq gsk_ keys, OpenAI-style sk- keys, bearer tokens, JWTs)
//
// Even in verbose mode, sensitive values are masked so that debug output
// can be shared when reporting a failing scrape.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("search request", "provider", "serper", "x-api-key", key) // key is masked
package log
