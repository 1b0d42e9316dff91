package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"devsearch/internal/browser"
	"devsearch/internal/config"
	"devsearch/internal/query"
	"devsearch/internal/rank"
	"devsearch/internal/search"
	"devsearch/internal/tui"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	var (
		settingsPath string
		sitesPath    string
		oneShot      string
		maxResults   int
		providerName string
		verbose      bool
		doInit       bool
		showVersion  bool
	)

	flag.StringVar(&settingsPath, "config", config.DefaultSettingsPath(), "Path to the settings file")
	flag.StringVar(&sitesPath, "sites", config.DefaultSitesPath(), "Path to the priority-site list")
	flag.StringVar(&oneShot, "q", "", "Run a single query, print ranked results to stdout and exit")
	flag.IntVar(&maxResults, "n", 0, "Override the configured result count limit")
	flag.StringVar(&providerName, "provider", "", "Override the configured search provider (duckduckgo, searxng)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&doInit, "init", false, "Write commented starter configuration files and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("devsearch %s\n", version)
		return
	}

	// In one-shot mode logs go to stderr next to the results; the TUI owns
	// the terminal, so there they go to a file instead.
	if oneShot != "" || doInit {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logPath := config.DefaultLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true})
			}
		}
	}

	if doInit {
		if err := config.Init(settingsPath, sitesPath); err != nil {
			log.Fatal().Err(err).Msg("init failed")
		}
		fmt.Printf("wrote %s and %s\n", settingsPath, sitesPath)
		return
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		if !config.IsNotExist(err) {
			log.Fatal().Err(err).Msg("unreadable settings; fix the file or rerun with -init")
		}
		settings = config.Default()
	}
	sites, err := config.LoadSites(sitesPath)
	if err != nil {
		if !config.IsNotExist(err) {
			log.Fatal().Err(err).Msg("unreadable site list; fix the file or rerun with -init")
		}
		sites = nil
	}

	// Flag overrides on top of file config.
	if maxResults > 0 {
		settings.MaxResults = maxResults
	}
	if providerName != "" {
		settings.Provider = providerName
	}
	if verbose {
		settings.Verbose = true
	}
	if err := settings.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if settings.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	priorities := rank.PriorityList(sites)
	dispatcher := &query.Dispatcher{
		Provider:   buildProvider(settings),
		Priorities: priorities,
		MaxResults: settings.MaxResults,
		Timeout:    settings.Timeout,
		SiteScoped: true,
	}

	if oneShot != "" {
		if err := runOnce(dispatcher, priorities, oneShot); err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		return
	}

	err = tui.Run(tui.Deps{
		Dispatcher: dispatcher,
		Opener:     browser.SystemOpener{},
		Priorities: priorities,
		Theme:      settings.Theme,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ui error")
	}
}

func buildProvider(s config.Settings) search.Provider {
	hc := &http.Client{Timeout: s.Timeout}
	switch s.Provider {
	case "searxng":
		return &search.SearxNG{
			BaseURL:    s.Searx.URL,
			APIKey:     s.Searx.Key,
			UserAgent:  s.Searx.UserAgent,
			HTTPClient: hc,
		}
	default:
		return &search.DuckDuckGo{
			UserAgent:  config.DefaultUserAgent,
			HTTPClient: hc,
		}
	}
}

// runOnce prints ranked results to stdout, one block per result, so the tool
// composes with pipes and scripts.
func runOnce(d *query.Dispatcher, priorities rank.PriorityList, q string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout+5*time.Second)
	defer cancel()
	results, err := d.Search(ctx, q)
	if err != nil {
		return err
	}
	for i, r := range results {
		marker := " "
		if priorities.Matches(r.URL) {
			marker = "*"
		}
		fmt.Printf("%2d.%s %s\n    %s\n", i+1, marker, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Printf("    %s\n", r.Snippet)
		}
		fmt.Println()
	}
	return nil
}
