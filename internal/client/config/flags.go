package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/surlink/internal/flagx"
)

// cliFlags are the flags parseFlags owns; true marks flags that take a value.
var cliFlags = flagx.Set{
	"-a":         true,
	"-e":         true,
	"-i":         true,
	"-s":         true,
	"-d":         true,
	"-data":      true,
	"-lang":      true,
	"-s3-bucket": true,
	"-v":         false,
}

// parseFlags overlays cfg with command-line flags:
//
//	-a string          classification API base URL
//	-e string          explanation API base URL
//	-i int             status check interval in seconds; values below 1 are ignored
//	-s string          store driver: sqlite | postgres
//	-d string          store DSN
//	-data string       data directory
//	-lang string       OCR language
//	-s3-bucket string  bucket for profile pictures
//	-v                 debug logging
//
// A malformed value panics.
func parseFlags(cfg *Config) {
	parseFlagArgs(cfg, os.Args[1:])
}

func parseFlagArgs(cfg *Config, args []string) {
	fs := flag.NewFlagSet("surlink", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "classification API base URL")
	fs.StringVar(&cfg.ExplainerURL, "e", cfg.ExplainerURL, "explanation API base URL")
	interval := fs.Int("i", int(cfg.StatusCheckInterval.Seconds()), "status check interval (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "store DSN")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.OCRLanguage, "lang", cfg.OCRLanguage, "OCR language")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "bucket for profile pictures")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(flagx.FilterArgs(args, cliFlags)); err != nil {
		panic(err)
	}

	if *interval > 0 {
		cfg.StatusCheckInterval = time.Duration(*interval) * time.Second
	}
}
