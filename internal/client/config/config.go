package config

import "time"

// Config holds runtime settings for the SurLink CLI.
//
// Fields:
//   - APIURL / ExplainerURL: base URLs of the classification and explanation services.
//     An empty ExplainerURL disables explanations.
//   - StatusCheckInterval: how often both health endpoints are probed.
//   - ProbeTimeout / RequestTimeout: per-call deadlines for probes and scan requests.
//   - StoreDriver / DatabaseDSN: "sqlite" (default, DSN defaults to DataDir/surlink.db)
//     or "postgres" (DSN required).
//   - DataDir: directory for local files; empty means the user config dir.
//   - SessionTTL: lifetime of a login session token.
//   - CameraFrontDevice / CameraBackDevice / FFmpegPath: camera capture settings.
//   - TesseractPath / OCRLanguage: OCR engine settings.
//   - S3*: optional object storage for profile pictures; empty S3Bucket keeps
//     pictures inline in the account record.
//   - LogFormat: "text" (default) or "json".
//   - Verbose: enables debug logging.
type Config struct {
	APIURL              string
	ExplainerURL        string
	StatusCheckInterval time.Duration
	ProbeTimeout        time.Duration
	RequestTimeout      time.Duration
	StoreDriver         string
	DatabaseDSN         string
	DataDir             string
	SessionTTL          time.Duration
	CameraFrontDevice   string
	CameraBackDevice    string
	FFmpegPath          string
	TesseractPath       string
	OCRLanguage         string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3AccessKey         string
	S3SecretKey         string
	LogFormat           string
	Verbose             bool
}

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const (
	defaultStatusCheckInterval = 30 * time.Second
	defaultProbeTimeout        = 3 * time.Second
	defaultRequestTimeout      = 60 * time.Second
	defaultSessionTTL          = 7 * 24 * time.Hour
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "https://adAStra144-Anti-Phishing-Scanner-0.hf.space"
	c.ExplainerURL = ""
	c.StatusCheckInterval = defaultStatusCheckInterval
	c.ProbeTimeout = defaultProbeTimeout
	c.RequestTimeout = defaultRequestTimeout
	c.StoreDriver = StoreSQLite
	c.DatabaseDSN = ""
	c.DataDir = ""
	c.SessionTTL = defaultSessionTTL
	c.CameraFrontDevice = "/dev/video0"
	c.CameraBackDevice = "/dev/video1"
	c.FFmpegPath = "ffmpeg"
	c.TesseractPath = "tesseract"
	c.OCRLanguage = "eng"
	c.S3Region = "us-east-1"
	c.LogFormat = "text"
}

// AvatarsInS3 reports whether profile pictures go to object storage.
func (c *Config) AvatarsInS3() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	cfg.normalizeDurations()
	return cfg
}

// normalizeDurations replaces non-positive durations with their defaults.
func (c *Config) normalizeDurations() {
	positiveOr(&c.StatusCheckInterval, defaultStatusCheckInterval)
	positiveOr(&c.ProbeTimeout, defaultProbeTimeout)
	positiveOr(&c.RequestTimeout, defaultRequestTimeout)
	positiveOr(&c.SessionTTL, defaultSessionTTL)
}

func positiveOr(d *time.Duration, def time.Duration) {
	if *d <= 0 {
		*d = def
	}
}
