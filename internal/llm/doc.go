// Package llm is a small client for OpenAI-compatible chat completion APIs
// such as Groq.
//
// The client is constructed once from explicit credentials. A client without
// an API key reports ErrUnavailable from every call, so callers can treat a
// missing key and an unreachable service the same way.
package llm
