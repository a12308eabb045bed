package uploader

import (
	"time"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

const (
	DefaultConcurrency    = 3
	DefaultBatchPause     = 300 * time.Millisecond
	DefaultRecoveryPasses = 3
	DefaultPassDelay      = 5 * time.Second
)

// Config tunes the orchestrator. Zero fields fall back to the defaults.
type Config struct {
	// MaxFileSize is the per-file ceiling checked by the validator.
	MaxFileSize int64
	// Concurrency is the number of transfers in flight within one batch.
	Concurrency int
	// BatchPause separates consecutive batches.
	BatchPause time.Duration
	// Retry is the per-transfer policy, used by both the first pass and the
	// recovery passes.
	Retry Policy
	// RecoveryPasses bounds the extra passes over failed files; pass n waits
	// n*PassDelay before starting.
	RecoveryPasses int
	PassDelay      time.Duration
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:    common.MaxFileSize,
		Concurrency:    DefaultConcurrency,
		BatchPause:     DefaultBatchPause,
		Retry:          DefaultPolicy(),
		RecoveryPasses: DefaultRecoveryPasses,
		PassDelay:      DefaultPassDelay,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = d.MaxFileSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.BatchPause < 0 {
		c.BatchPause = 0
	}
	if c.RecoveryPasses < 0 {
		c.RecoveryPasses = 0
	}
	if c.PassDelay < 0 {
		c.PassDelay = 0
	}
	c.Retry = c.Retry.withDefaults()
	return c
}
