package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./pixelpost.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port              string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string  `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://news.example.com)"`
	TopicsFile        string  `long:"topics-file" env:"TOPICS_FILE" description:"Optional YAML file overriding the built-in topic list"`
	WorkerCount       int     `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for content extraction and cleanup"`
	SchedulerInterval int     `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	SessionTTL        int     `long:"session-ttl" env:"SESSION_TTL" default:"30" description:"Idle feed session lifetime in minutes"`
	ScrollThreshold   float64 `long:"scroll-threshold" env:"SCROLL_THRESHOLD" default:"0.6" description:"Sentinel visibility fraction that triggers the next page load"`
	SearchDebounceMs  int     `long:"search-debounce" env:"SEARCH_DEBOUNCE" default:"400" description:"Quiet period in milliseconds before a search value is committed"`

	// Upstream headline API
	HeadlinesEndpoint string `long:"headlines-endpoint" env:"HEADLINES_ENDPOINT" default:"https://gnews.io/api/v4/top-headlines" description:"Upstream headline API endpoint"`
	HeadlinesAPIKey   string `long:"headlines-api-key" env:"HEADLINES_API_KEY" description:"Upstream headline API key (required)" required:"true"`
	HeadlinesLang     string `long:"headlines-lang" env:"HEADLINES_LANG" default:"en" description:"Language for upstream headline queries"`

	// Auth
	JWTSecret    string `long:"jwt-secret" env:"JWT_SECRET" description:"Secret for signing auth tokens (required)" required:"true"`
	TokenTTLMins int    `long:"token-ttl" env:"TOKEN_TTL" default:"30" description:"Auth token lifetime in minutes"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"PixelPost/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		TopicsFile:        raw.TopicsFile,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		SessionTTL:        raw.SessionTTL,
		ScrollThreshold:   raw.ScrollThreshold,
		SearchDebounceMs:  raw.SearchDebounceMs,
		HeadlinesEndpoint: raw.HeadlinesEndpoint,
		HeadlinesAPIKey:   raw.HeadlinesAPIKey,
		HeadlinesLang:     raw.HeadlinesLang,
		JWTSecret:         raw.JWTSecret,
		TokenTTLMins:      raw.TokenTTLMins,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
