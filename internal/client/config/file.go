package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/surlink/internal/flagx"
	"github.com/dmitrijs2005/surlink/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file decoding. Durations
// use timex.Duration so they can be strings like "30s" or integer
// nanoseconds. Only fields present in the file override the defaults.
type FileConfig struct {
	APIURL              *string         `json:"api_url" yaml:"api_url"`
	ExplainerURL        *string         `json:"explainer_url" yaml:"explainer_url"`
	StatusCheckInterval *timex.Duration `json:"status_check_interval" yaml:"status_check_interval"`
	ProbeTimeout        *timex.Duration `json:"probe_timeout" yaml:"probe_timeout"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StoreDriver         *string         `json:"store_driver" yaml:"store_driver"`
	DatabaseDSN         *string         `json:"database_dsn" yaml:"database_dsn"`
	DataDir             *string         `json:"data_dir" yaml:"data_dir"`
	SessionTTL          *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	CameraFrontDevice   *string         `json:"camera_front_device" yaml:"camera_front_device"`
	CameraBackDevice    *string         `json:"camera_back_device" yaml:"camera_back_device"`
	FFmpegPath          *string         `json:"ffmpeg_path" yaml:"ffmpeg_path"`
	TesseractPath       *string         `json:"tesseract_path" yaml:"tesseract_path"`
	OCRLanguage         *string         `json:"ocr_language" yaml:"ocr_language"`
	S3Bucket            *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region            *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey         *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
	Verbose             *bool           `json:"verbose" yaml:"verbose"`
}

// parseFile overlays Config with values loaded from a JSON or YAML file.
//
// The path comes from -c or -config (flagx.ConfigFileFlag). Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON. Read or decode
// errors panic; main is expected to let them crash startup.
func parseFile(cfg *Config) {
	configFile := flagx.ConfigFileFlag()
	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.ExplainerURL, fc.ExplainerURL)
	setDuration(&cfg.StatusCheckInterval, fc.StatusCheckInterval)
	setDuration(&cfg.ProbeTimeout, fc.ProbeTimeout)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setString(&cfg.StoreDriver, fc.StoreDriver)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.DataDir, fc.DataDir)
	setDuration(&cfg.SessionTTL, fc.SessionTTL)
	setString(&cfg.CameraFrontDevice, fc.CameraFrontDevice)
	setString(&cfg.CameraBackDevice, fc.CameraBackDevice)
	setString(&cfg.FFmpegPath, fc.FFmpegPath)
	setString(&cfg.TesseractPath, fc.TesseractPath)
	setString(&cfg.OCRLanguage, fc.OCRLanguage)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
