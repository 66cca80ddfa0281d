package cfg

import "time"

const (
	CommandRun   = "run"
	CommandFeed  = "feed"
	CommandLink  = "link"
	CommandServe = "serve"
)

type Cfg struct {
	// Active subcommand
	Command string

	// HTTP client
	Timeout   time.Duration
	UserAgent string

	// Affiliate configuration file (optional)
	AffiliateConfig string

	// Run history (optional)
	DatabaseURL string

	// Output upload (optional)
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3Prefix          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool

	// run, feed and serve
	FeedURLs []string
	Output   string
	MaxPosts int
	Delay    float64
	NoScrape bool

	// link
	LinkURL string

	// serve
	Port         string
	APIAccessKey string

	Timezone string
	Debug    bool
	Version  string
}
