package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type runCommand struct {
	URLs     []string `long:"url" default:"https://smartcanucks.ca/feed/" description:"RSS feed URL (repeatable)"`
	Output   string   `long:"output" short:"o" default:"build/comprehensive_feed.json" description:"Output JSON file"`
	MaxPosts int      `long:"max-posts" default:"10" description:"Maximum number of posts to scrape per feed"`
	Delay    float64  `long:"delay" default:"2.0" description:"Minimum delay between post requests in seconds"`
	NoScrape bool     `long:"no-scrape" description:"Process feed entry links without scraping posts"`
}

type feedCommand struct {
	URL    string `long:"url" default:"https://smartcanucks.ca/feed/" description:"RSS feed URL"`
	Output string `long:"output" short:"o" default:"public/feed.json" description:"Output JSON file"`
}

type linkCommand struct {
	URL  string `long:"url" description:"URL to process"`
	Args struct {
		URL string `positional-arg-name:"url"`
	} `positional-args:"yes"`
}

type serveCommand struct {
	Port         string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string  `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	URL          string  `long:"url" default:"https://smartcanucks.ca/feed/" description:"Default feed URL for API runs"`
	MaxPosts     int     `long:"max-posts" default:"10" description:"Default maximum number of posts for API runs"`
	Delay        float64 `long:"delay" default:"2.0" description:"Minimum delay between post requests in seconds"`
}

type rawCfg struct {
	// HTTP client configuration
	Timeout   time.Duration `long:"timeout" env:"HTTP_TIMEOUT" default:"10s" description:"HTTP request timeout"`
	UserAgent string        `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests (default: desktop Chrome)"`

	AffiliateConfig string `long:"affiliate-config" env:"AFFILIATE_CONFIG" description:"Path to affiliate YAML configuration (optional)"`
	DatabaseURL     string `long:"db" env:"DATABASE_URL" description:"Run history database (SQLite path or libsql:// URL, optional)"`

	// Output upload configuration
	S3Endpoint        string `long:"s3-endpoint" env:"S3_ENDPOINT" description:"S3-compatible endpoint URL"`
	S3Region          string `long:"s3-region" env:"S3_REGION" default:"us-east-1" description:"S3 region"`
	S3Bucket          string `long:"s3-bucket" env:"S3_BUCKET" description:"S3 bucket for output upload (optional)"`
	S3Prefix          string `long:"s3-prefix" env:"S3_PREFIX" description:"Key prefix for uploaded output"`
	S3AccessKeyID     string `long:"s3-access-key" env:"S3_ACCESS_KEY_ID" description:"S3 access key ID"`
	S3SecretAccessKey string `long:"s3-secret-key" env:"S3_SECRET_ACCESS_KEY" description:"S3 secret access key"`
	S3UsePathStyle    bool   `long:"s3-path-style" env:"S3_USE_PATH_STYLE" description:"Use path-style S3 addressing"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Toronto)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Run   runCommand   `command:"run" description:"Run the full deal pipeline"`
	Feed  feedCommand  `command:"feed" description:"Convert an RSS feed to JSON"`
	Link  linkCommand  `command:"link" description:"Resolve, clean and tag a single URL"`
	Serve serveCommand `command:"serve" description:"Start the HTTP API"`
}

// Load reads .env (if present), the environment and the command line.
func Load() (*Cfg, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg, err := Parse(os.Args[1:])
	if err != nil || cfg == nil {
		return cfg, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

// Parse builds a Cfg from args. It returns nil, nil when help was requested.
func Parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Command:           parser.Active.Name,
		Timeout:           raw.Timeout,
		UserAgent:         raw.UserAgent,
		AffiliateConfig:   raw.AffiliateConfig,
		DatabaseURL:       raw.DatabaseURL,
		S3Endpoint:        raw.S3Endpoint,
		S3Region:          raw.S3Region,
		S3Bucket:          raw.S3Bucket,
		S3Prefix:          raw.S3Prefix,
		S3AccessKeyID:     raw.S3AccessKeyID,
		S3SecretAccessKey: raw.S3SecretAccessKey,
		S3UsePathStyle:    raw.S3UsePathStyle,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	switch cfg.Command {
	case CommandRun:
		cfg.FeedURLs = raw.Run.URLs
		cfg.Output = raw.Run.Output
		cfg.MaxPosts = raw.Run.MaxPosts
		cfg.Delay = raw.Run.Delay
		cfg.NoScrape = raw.Run.NoScrape
	case CommandFeed:
		cfg.FeedURLs = []string{raw.Feed.URL}
		cfg.Output = raw.Feed.Output
	case CommandLink:
		cfg.LinkURL = cmp.Or(raw.Link.Args.URL, raw.Link.URL)
		if cfg.LinkURL == "" {
			return nil, errors.New("link requires a URL")
		}
	case CommandServe:
		cfg.Port = raw.Serve.Port
		cfg.APIAccessKey = raw.Serve.APIAccessKey
		cfg.FeedURLs = []string{raw.Serve.URL}
		cfg.MaxPosts = raw.Serve.MaxPosts
		cfg.Delay = raw.Serve.Delay
	}

	if cfg.MaxPosts < 0 {
		return nil, fmt.Errorf("max-posts must not be negative: %d", cfg.MaxPosts)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("delay must not be negative: %g", cfg.Delay)
	}

	return cfg, nil
}

// Printed reports whether err was already written to stderr by go-flags.
// Validation errors from Parse are not, and the caller has to print them.
func Printed(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr)
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			slog.Debug("Timezone configured", "timezone", timezone)
		}
	}
	return nil
}
