package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/uniscout/internal/discovery"
	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/pipeline"
	"github.com/nao1215/uniscout/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "uniscout"

	// DefaultMissionFile is read when --mission is not given.
	DefaultMissionFile = "mission.yaml"

	// DefaultEnvFile holds credentials next to the mission.
	DefaultEnvFile = ".env"

	// DefaultOutputDir receives the comparison and report files.
	DefaultOutputDir = "outputs"

	// DefaultNavigationTimeout bounds one page load. University sites
	// behind consent walls regularly take more than ten seconds.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultRequestsPerSecond paces the plain HTTP requests of one run.
	DefaultRequestsPerSecond = 2.0
)

// Browser names accepted by --browser.
const (
	BrowserChrome = "chrome"
	BrowserHTTP   = "http"
)

// Report format names accepted by --format.
const (
	FormatCSV      = report.FormatCSV
	FormatMarkdown = report.FormatMarkdown
	FormatJSON     = report.FormatJSON
)

// Formats lists every supported report format.
var Formats = []string{FormatCSV, FormatMarkdown, FormatJSON}

// Config holds the options of one run.
// It is populated from CLI flags and passed through the application
// rather than kept in global state.
//
// Design decision: the structure stays flat like the flag set it mirrors.
// Everything describing the student and the targets lives in Mission.
type Config struct {
	// MissionPath is the mission YAML file.
	MissionPath string

	// EnvFile is the dotenv file read by LoadCredentials.
	EnvFile string

	// Limit processes only the first Limit targets. Zero means all.
	Limit int

	// Concurrency is the number of institutions processed in parallel.
	// Each worker owns one browser session.
	Concurrency int

	// Browser selects the page renderer ("chrome" or "http").
	Browser string

	// ChromePath overrides the Chrome binary lookup.
	ChromePath string

	// NavigationTimeout bounds one page load.
	NavigationTimeout time.Duration

	// RequestsPerSecond paces plain HTTP requests. Zero disables pacing.
	RequestsPerSecond float64

	// UserAgent is sent by every HTTP client and the browser.
	UserAgent string

	// SerperURL, DuckDuckGoURL and NumbeoURL locate the external services.
	// They only change for mirrors and tests.
	SerperURL     string
	DuckDuckGoURL string
	NumbeoURL     string

	// OutputDir receives comparison.csv, report.md and comparison.json.
	OutputDir string

	// CacheDir holds the per-stage JSON artifacts and the content database.
	// Defaults to the XDG cache directory.
	CacheDir string

	// Formats lists the report files to write.
	Formats []string

	// Refresh selects the stages whose artifacts are recomputed.
	Refresh pipeline.Refresh

	// SkipRecommendation disables the LLM recommendation paragraph.
	SkipRecommendation bool

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches console logs to JSON.
	LogJSON bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MissionPath:       DefaultMissionFile,
		EnvFile:           DefaultEnvFile,
		Concurrency:       pipeline.DefaultConcurrency,
		Browser:           BrowserChrome,
		NavigationTimeout: DefaultNavigationTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		SerperURL:         discovery.DefaultSerperURL,
		DuckDuckGoURL:     discovery.DefaultDuckDuckGoURL,
		NumbeoURL:         livingcost.DefaultBaseURL,
		OutputDir:         DefaultOutputDir,
		CacheDir:          XDGCacheDir(),
		Formats:           []string{FormatCSV, FormatMarkdown},
	}
}

// ArtifactDir is the directory of per-stage JSON artifacts.
func (c *Config) ArtifactDir() string {
	return filepath.Join(c.CacheDir, "artifacts")
}

// ContentDir is the directory of the SQLite content and history database.
func (c *Config) ContentDir() string {
	return c.CacheDir
}

// WantsFormat reports whether format is requested.
func (c *Config) WantsFormat(format string) bool {
	return slices.Contains(c.Formats, format)
}

// XDGCacheDir returns the XDG cache directory for uniscout.
// On Linux: ~/.cache/uniscout
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGConfigDir returns the XDG config directory for uniscout.
// On Linux: ~/.config/uniscout
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.MissionPath == "" {
		return ErrNoMission
	}
	if c.Limit < 0 {
		return ErrInvalidLimit
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.NavigationTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RequestsPerSecond < 0 {
		return ErrInvalidRequestRate
	}
	if c.Browser != BrowserChrome && c.Browser != BrowserHTTP {
		return fmt.Errorf("%w: %q", ErrUnknownBrowser, c.Browser)
	}
	for _, f := range c.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, f, Formats)
		}
	}
	return nil
}
