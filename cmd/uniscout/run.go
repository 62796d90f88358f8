package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/cache"
	"github.com/nao1215/uniscout/internal/config"
	"github.com/nao1215/uniscout/internal/database"
	"github.com/nao1215/uniscout/internal/discovery"
	"github.com/nao1215/uniscout/internal/fetcher"
	"github.com/nao1215/uniscout/internal/httpclient"
	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/llm"
	ulog "github.com/nao1215/uniscout/internal/log"
	"github.com/nao1215/uniscout/internal/matcher"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/pipeline"
	"github.com/nao1215/uniscout/internal/prestige"
	"github.com/nao1215/uniscout/internal/report"
	"github.com/nao1215/uniscout/internal/scoring"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare the targets of a mission",
		Long: `Run evaluates every target university of a mission file.

For each institution it:
- Searches the program pages (Serper, DuckDuckGo as fallback)
- Extracts the course list from HTML pages and PDF study guides
- Matches your courses by similarity, asking the LLM in the doubtful band
- Estimates the monthly cost of living and looks up prestige

The ranked comparison is printed and written to the output directory.
Every stage is cached per institution; use the --refresh flags to recompute.

Examples:
  # Run the mission in the current directory
  uniscout run

  # Run a specific mission, first two targets only
  uniscout run -m missions/madrid.yaml --limit 2

  # Recompute matching after editing the courses
  uniscout run --refresh-matching

  # Use plain HTTP instead of headless Chrome
  uniscout run --browser http

  # Write every report format
  uniscout run --format csv,markdown,json`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("mission", "m", config.DefaultMissionFile,
		"Mission file path")
	cmd.Flags().String("env-file", config.DefaultEnvFile,
		"Dotenv file with API keys (ignored when missing)")
	cmd.Flags().IntP("limit", "l", 0,
		"Process only the first N targets (0 means all)")

	cmd.Flags().Bool("refresh", false, "Recompute every cached stage")
	cmd.Flags().Bool("refresh-discovery", false, "Recompute cached discovery results")
	cmd.Flags().Bool("refresh-extraction", false, "Recompute cached extracted courses")
	cmd.Flags().Bool("refresh-matching", false, "Recompute cached course matches")
	cmd.Flags().Bool("refresh-cost", false, "Recompute cached living cost estimates")
	cmd.Flags().Bool("refresh-prestige", false, "Recompute cached prestige scores")

	cmd.Flags().IntP("concurrency", "c", pipeline.DefaultConcurrency,
		"Number of institutions processed in parallel")
	cmd.Flags().StringP("browser", "b", config.BrowserChrome,
		"Page renderer (chrome or http)")
	cmd.Flags().String("chrome-path", "",
		"Chrome binary (default: search the PATH)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultNavigationTimeout,
		"Timeout for each page load")
	cmd.Flags().Float64("rps", config.DefaultRequestsPerSecond,
		"Maximum HTTP requests per second (0 disables pacing)")
	cmd.Flags().String("user-agent", "",
		"User agent of every request (default: desktop Chrome)")

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for the report files")
	cmd.Flags().String("cache-dir", config.XDGCacheDir(),
		"Directory for cached artifacts and downloaded content")
	cmd.Flags().StringSliceP("format", "f", []string{config.FormatCSV, config.FormatMarkdown},
		"Report formats to write (csv, markdown, json)")
	cmd.Flags().Bool("no-recommendation", false,
		"Skip the LLM recommendation paragraph")

	// Endpoint overrides for mirrors and offline runs.
	cmd.Flags().String("serper-url", discovery.DefaultSerperURL, "Serper search endpoint")
	cmd.Flags().String("duckduckgo-url", discovery.DefaultDuckDuckGoURL, "DuckDuckGo HTML endpoint")
	cmd.Flags().String("numbeo-url", livingcost.DefaultBaseURL, "Numbeo city page prefix")
	for _, name := range []string{"serper-url", "duckduckgo-url", "numbeo-url"} {
		_ = cmd.Flags().MarkHidden(name)
	}

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runMission(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// getBoolFlag retrieves a flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.MissionPath, err = flags.GetString("mission"); err != nil {
		return nil, err
	}
	if cfg.EnvFile, err = flags.GetString("env-file"); err != nil {
		return nil, err
	}
	if cfg.Limit, err = flags.GetInt("limit"); err != nil {
		return nil, err
	}

	refresh := []struct {
		name   string
		target *bool
	}{
		{"refresh", &cfg.Refresh.All},
		{"refresh-discovery", &cfg.Refresh.Discovery},
		{"refresh-extraction", &cfg.Refresh.Extraction},
		{"refresh-matching", &cfg.Refresh.Matching},
		{"refresh-cost", &cfg.Refresh.LivingCost},
		{"refresh-prestige", &cfg.Refresh.Prestige},
	}
	for _, r := range refresh {
		if *r.target, err = flags.GetBool(r.name); err != nil {
			return nil, err
		}
	}

	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.Browser, err = flags.GetString("browser"); err != nil {
		return nil, err
	}
	if cfg.ChromePath, err = flags.GetString("chrome-path"); err != nil {
		return nil, err
	}
	if cfg.NavigationTimeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.RequestsPerSecond, err = flags.GetFloat64("rps"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.CacheDir, err = flags.GetString("cache-dir"); err != nil {
		return nil, err
	}
	if cfg.Formats, err = flags.GetStringSlice("format"); err != nil {
		return nil, err
	}
	if cfg.SkipRecommendation, err = flags.GetBool("no-recommendation"); err != nil {
		return nil, err
	}
	if cfg.SerperURL, err = flags.GetString("serper-url"); err != nil {
		return nil, err
	}
	if cfg.DuckDuckGoURL, err = flags.GetString("duckduckgo-url"); err != nil {
		return nil, err
	}
	if cfg.NumbeoURL, err = flags.GetString("numbeo-url"); err != nil {
		return nil, err
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.LogJSON = getBoolFlag(cmd, "log-json")

	return cfg, nil
}

// setupLogger creates the redacting console logger.
func setupLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	if asJSON {
		return ulog.NewSecureJSONLogger(w, verbose)
	}
	return ulog.NewSecureLogger(w, verbose)
}

// runMission executes one mission end to end. The ranking is printed to
// out and progress lines go to progress.
func runMission(ctx context.Context, cfg *config.Config, out, progress io.Writer, logger *slog.Logger) error {
	mission, err := config.LoadMission(cfg.MissionPath)
	if err != nil {
		return err
	}
	creds, err := config.LoadCredentials(cfg.EnvFile)
	if err != nil {
		return err
	}
	courses, err := mission.Courses()
	if err != nil {
		return err
	}

	if !creds.HasSearch() {
		logger.Warn("SERPER_API_KEY is not set, searching with DuckDuckGo only")
	}
	if !creds.HasLLM() {
		logger.Warn("no LLM key set, doubtful course pairs keep their similarity verdict")
	}

	store, err := cache.NewStore(cfg.ArtifactDir())
	if err != nil {
		return fmt.Errorf("failed to open artifact cache: %w", err)
	}
	db, err := database.Open(cfg.ContentDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("cache opened", "artifacts", store.Dir(), "database", db.Path())

	limiter := httpclient.NewLimiter(cfg.RequestsPerSecond, 1)
	client := llm.New(creds.LLMAPIKey,
		llm.WithBaseURL(creds.LLMBaseURL),
		llm.WithModel(creds.LLMModel),
		llm.WithRetries(2),
	)

	var costPages []browser.Browser
	for _, l := range costLaunchers(cfg, limiter) {
		session, err := browser.Lazy(l).Launch(ctx)
		if err != nil {
			return fmt.Errorf("failed to start living cost session: %w", err)
		}
		defer session.Close()
		costPages = append(costPages, session)
	}

	services := newServices(cfg, creds, client, store, db, limiter, costPages, logger)

	insts := mission.Institutions(cfg.Limit)
	reports := pipeline.NewReports(insts, courses, mission.SettingsFor())

	fmt.Fprintf(progress, "Evaluating %d institution(s) (concurrency: %d)...\n", len(reports), cfg.Concurrency)
	started := time.Now()

	var mu sync.Mutex
	done := 0
	bp := pipeline.NewBatchProcessor(services.Factory(),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLauncher(newLauncher(cfg, limiter)),
		pipeline.WithBatchLogger(logger),
		pipeline.WithOnComplete(func(r *model.InstitutionReport, _ int) {
			mu.Lock()
			defer mu.Unlock()
			done++
			status := "ok"
			if len(r.Errors) > 0 {
				status = fmt.Sprintf("%d error(s)", len(r.Errors))
			}
			fmt.Fprintf(progress, "[%d/%d] %s: %s\n", done, len(reports), r.Institution.Name, status)
		}),
	)
	if err := bp.ProcessBatch(ctx, reports); err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	fmt.Fprintf(progress, "Completed in %s\n\n", time.Since(started).Round(time.Millisecond))

	comparison := &model.Comparison{
		RunID:     uuid.NewString(),
		MissionID: mission.ID,
		Goal:      mission.Goal,
		Generated: time.Now(),
		Rows:      scoring.BuildComparison(reports, mission.Profile.Preferences),
	}

	if !cfg.SkipRecommendation && creds.HasLLM() {
		recommender := report.NewRecommender(client.WithTemperature(report.RecommendationTemperature))
		text, err := recommender.Recommend(ctx, comparison, report.Student{
			Name:    mission.Profile.Name,
			Degree:  mission.CurrentStudies.Degree,
			Weights: mission.Profile.Preferences,
		})
		if err != nil && !errors.Is(err, report.ErrNoRows) {
			logger.Warn("recommendation failed", "error", err)
		}
		comparison.Recommendation = text
	}

	if err := db.SaveComparison(ctx, comparison); err != nil {
		logger.Error("failed to save results", "run", comparison.RunID, "error", err)
	}

	if err := writeReports(cfg, comparison); err != nil {
		return err
	}

	if _, err := report.NewSimpleWriter(out).Write(comparison); err != nil {
		return fmt.Errorf("failed to print comparison: %w", err)
	}
	return nil
}

// newServices wires the stage collaborators of the standard pipeline.
func newServices(
	cfg *config.Config,
	creds config.Credentials,
	client *llm.Client,
	store *cache.Store,
	db *database.Store,
	limiter *rate.Limiter,
	costPages []browser.Browser,
	logger *slog.Logger,
) pipeline.Services {
	serper := discovery.NewSerperProvider(creds.SerperAPIKey,
		discovery.WithSerperEndpoint(cfg.SerperURL),
		discovery.WithSerperClient(httpclient.New(httpclient.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.NavigationTimeout,
		})),
	)
	downloader := fetcher.NewHTTPDownloader(httpclient.New(httpclient.Options{
		UserAgent:        cfg.UserAgent,
		Timeout:          fetcher.DefaultDocumentTimeout,
		Limiter:          limiter,
		BypassCloudflare: true,
	}), fetcher.DefaultMaxDocumentSize)

	var classifier matcher.Classifier
	if client.Available() {
		classifier = matcher.NewLLMClassifier(client)
	}

	return pipeline.Services{
		Store:   store,
		Refresh: cfg.Refresh,
		NewDiscoverer: func(b browser.Browser) pipeline.Discoverer {
			return discovery.New(serper,
				discovery.WithFallback(discovery.NewDuckDuckGoProvider(b, cfg.DuckDuckGoURL)),
				discovery.WithLogger(logger),
			)
		},
		NewFetcher: func(b browser.Browser) pipeline.ContentFetcher {
			return fetcher.New(b, downloader,
				fetcher.WithCache(db),
				fetcher.WithLogger(logger),
				fetcher.WithNavigationTimeout(cfg.NavigationTimeout),
			)
		},
		NewMatcher: func(ms model.MatchingSettings) pipeline.CourseMatcher {
			opts := []matcher.Option{
				matcher.WithThresholds(matcher.ThresholdsFrom(ms)),
				matcher.WithLogger(logger),
			}
			if scorer, err := matcher.LookupScorer(ms.Scorer); err == nil {
				opts = append(opts, matcher.WithScorer(scorer))
			}
			if classifier != nil {
				opts = append(opts, matcher.WithClassifier(classifier))
			}
			return matcher.New(opts...)
		},
		Estimator: livingcost.New(
			livingcost.WithPages(costPages...),
			livingcost.WithBaseURL(cfg.NumbeoURL),
			livingcost.WithLogger(logger),
		),
		Prestige: prestige.Lookup,
		Logger:   logger,
	}
}

// costLaunchers returns the living cost page loaders in the order they are
// tried. A rendering browser follows the plain HTTP session when
// --browser chrome is selected.
func costLaunchers(cfg *config.Config, limiter *rate.Limiter) []browser.Launcher {
	launchers := []browser.Launcher{browser.HTTPLauncher{
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		Limiter:           limiter,
	}}
	if cfg.Browser == config.BrowserChrome {
		launchers = append(launchers, newLauncher(cfg, limiter))
	}
	return launchers
}

// newLauncher returns the worker session launcher selected by --browser.
// The batch processor starts each session on first use.
func newLauncher(cfg *config.Config, limiter *rate.Limiter) browser.Launcher {
	if cfg.Browser == config.BrowserHTTP {
		return browser.HTTPLauncher{
			UserAgent:         cfg.UserAgent,
			NavigationTimeout: cfg.NavigationTimeout,
			Limiter:           limiter,
		}
	}
	return browser.ChromeLauncher{
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		ExecPath:          cfg.ChromePath,
	}
}

// writeReports writes every requested format into the output directory.
func writeReports(cfg *config.Config, c *model.Comparison) error {
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, format := range cfg.Formats {
		path := filepath.Join(cfg.OutputDir, report.FileNames[format])
		if err := writeReportFile(path, format, c); err != nil {
			return err
		}
	}
	return nil
}

func writeReportFile(path, format string, c *model.Comparison) (err error) {
	file, err := os.Create(path) //nolint:gosec // Output path is built from the user's output directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w, err := report.New(format, file)
	if err != nil {
		return err
	}
	if _, err := w.Write(c); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
