package config

import (
	"time"

	"github.com/dmitrijs2005/radicacion/internal/client/uploader"
	"github.com/dmitrijs2005/radicacion/internal/common"
)

// Config holds runtime settings for the radicar CLI.
//
// Durations are time.Duration; MaxFileSize is in bytes.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string

	MaxFileSize    int64
	Concurrency    int
	BatchPause     time.Duration
	MaxRetries     uint64
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	Jitter         float64
	RecoveryPasses int
	PassDelay      time.Duration

	RequestTimeout time.Duration
	UploadTimeout  time.Duration

	LogLevel   string
	ConfigFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.MaxFileSize = common.MaxFileSize
	c.Concurrency = uploader.DefaultConcurrency
	c.BatchPause = uploader.DefaultBatchPause
	c.MaxRetries = uploader.DefaultMaxRetries
	c.BaseDelay = uploader.DefaultBaseDelay
	c.MaxDelay = uploader.DefaultMaxDelay
	c.Jitter = uploader.DefaultJitter
	c.RecoveryPasses = uploader.DefaultRecoveryPasses
	c.PassDelay = uploader.DefaultPassDelay
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 60 * time.Second
	c.LogLevel = "info"
}

// Default returns a Config holding the defaults.
func Default() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// Uploader translates the settings into the orchestrator's configuration.
func (c *Config) Uploader() uploader.Config {
	return uploader.Config{
		MaxFileSize: c.MaxFileSize,
		Concurrency: c.Concurrency,
		BatchPause:  c.BatchPause,
		Retry: uploader.Policy{
			MaxRetries: c.MaxRetries,
			BaseDelay:  c.BaseDelay,
			MaxDelay:   c.MaxDelay,
			Jitter:     c.Jitter,
		},
		RecoveryPasses: c.RecoveryPasses,
		PassDelay:      c.PassDelay,
	}
}
