package config

import (
	"github.com/spf13/pflag"
)

// binding ties a flag to the Config field it sets, so values from the JSON
// file can be copied for every flag the user did not pass.
type binding struct {
	name  string
	apply func(dst, src *Config)
}

var bindings = []binding{
	{"server", func(d, s *Config) { d.ServerEndpointAddr = s.ServerEndpointAddr }},
	{"token", func(d, s *Config) { d.AccessToken = s.AccessToken }},
	{"max-file-size", func(d, s *Config) { d.MaxFileSize = s.MaxFileSize }},
	{"concurrency", func(d, s *Config) { d.Concurrency = s.Concurrency }},
	{"batch-pause", func(d, s *Config) { d.BatchPause = s.BatchPause }},
	{"max-retries", func(d, s *Config) { d.MaxRetries = s.MaxRetries }},
	{"base-delay", func(d, s *Config) { d.BaseDelay = s.BaseDelay }},
	{"max-delay", func(d, s *Config) { d.MaxDelay = s.MaxDelay }},
	{"jitter", func(d, s *Config) { d.Jitter = s.Jitter }},
	{"recovery-passes", func(d, s *Config) { d.RecoveryPasses = s.RecoveryPasses }},
	{"pass-delay", func(d, s *Config) { d.PassDelay = s.PassDelay }},
	{"request-timeout", func(d, s *Config) { d.RequestTimeout = s.RequestTimeout }},
	{"upload-timeout", func(d, s *Config) { d.UploadTimeout = s.UploadTimeout }},
	{"log-level", func(d, s *Config) { d.LogLevel = s.LogLevel }},
}

// BindFlags registers one flag per setting on fs, defaulting to the current
// values of cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.ConfigFile, "config", "c", cfg.ConfigFile, "path to a JSON config file")
	fs.StringVarP(&cfg.ServerEndpointAddr, "server", "a", cfg.ServerEndpointAddr, "address and port of the radicación server")
	fs.StringVar(&cfg.AccessToken, "token", cfg.AccessToken, "access token sent with every request")
	fs.Int64Var(&cfg.MaxFileSize, "max-file-size", cfg.MaxFileSize, "per-file size limit in bytes")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "files uploaded in parallel per batch")
	fs.DurationVar(&cfg.BatchPause, "batch-pause", cfg.BatchPause, "pause between batches")
	fs.Uint64Var(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "retries per transfer after the first attempt")
	fs.DurationVar(&cfg.BaseDelay, "base-delay", cfg.BaseDelay, "first retry backoff")
	fs.DurationVar(&cfg.MaxDelay, "max-delay", cfg.MaxDelay, "retry backoff ceiling")
	fs.Float64Var(&cfg.Jitter, "jitter", cfg.Jitter, "jitter fraction added to each backoff")
	fs.IntVar(&cfg.RecoveryPasses, "recovery-passes", cfg.RecoveryPasses, "recovery passes over failed files")
	fs.DurationVar(&cfg.PassDelay, "pass-delay", cfg.PassDelay, "wait unit before recovery pass n (n times this)")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "timeout of each server call")
	fs.DurationVar(&cfg.UploadTimeout, "upload-timeout", cfg.UploadTimeout, "timeout of each storage PUT")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}

// Resolve applies the JSON file named by --config underneath the flags:
// defaults -> JSON -> flags, later sources winning.
func (c *Config) Resolve(fs *pflag.FlagSet) error {
	if c.ConfigFile == "" {
		return nil
	}

	fromFile := Default()
	if err := parseJson(fromFile, c.ConfigFile); err != nil {
		return err
	}

	for _, b := range bindings {
		if !fs.Changed(b.name) {
			b.apply(c, fromFile)
		}
	}
	return nil
}
