package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nao1215/uniscout/internal/llm"
)

// Environment variables read by LoadCredentials.
const (
	EnvSerperAPIKey = "SERPER_API_KEY"
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvLLMAPIKey    = "LLM_API_KEY"
	EnvGroqModel    = "GROQ_MODEL"
	EnvLLMBaseURL   = "LLM_BASE_URL"
)

// Credentials are the API keys and endpoints of external services.
// A missing key disables the service; it is never an error.
type Credentials struct {
	SerperAPIKey string
	LLMAPIKey    string
	LLMModel     string
	LLMBaseURL   string
}

// HasSearch reports whether the Serper key is set.
func (c Credentials) HasSearch() bool {
	return c.SerperAPIKey != ""
}

// HasLLM reports whether an LLM key is set.
func (c Credentials) HasLLM() bool {
	return c.LLMAPIKey != ""
}

// LoadCredentials loads envFile into the process environment and reads
// the credentials from it. Variables already set in the environment win
// over the file. A missing file is not an error.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Credentials{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	return CredentialsFrom(os.LookupEnv), nil
}

// CredentialsFrom reads the credentials through lookup.
// GROQ_API_KEY takes precedence over LLM_API_KEY.
func CredentialsFrom(lookup func(string) (string, bool)) Credentials {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	c := Credentials{
		SerperAPIKey: get(EnvSerperAPIKey),
		LLMAPIKey:    get(EnvGroqAPIKey, EnvLLMAPIKey),
		LLMModel:     get(EnvGroqModel),
		LLMBaseURL:   get(EnvLLMBaseURL),
	}
	if c.LLMModel == "" {
		c.LLMModel = llm.DefaultModel
	}
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = llm.DefaultBaseURL
	}
	return c
}
