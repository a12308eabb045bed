package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "300ms" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	AccessToken        string         `json:"access_token"`
	MaxFileSize        int64          `json:"max_file_size"`
	Concurrency        int            `json:"concurrency"`
	BatchPause         timex.Duration `json:"batch_pause"`
	MaxRetries         uint64         `json:"max_retries"`
	BaseDelay          timex.Duration `json:"base_delay"`
	MaxDelay           timex.Duration `json:"max_delay"`
	Jitter             float64        `json:"jitter"`
	RecoveryPasses     int            `json:"recovery_passes"`
	PassDelay          timex.Duration `json:"pass_delay"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	UploadTimeout      timex.Duration `json:"upload_timeout"`
	LogLevel           string         `json:"log_level"`
}

func toJson(cfg *Config) JsonConfig {
	return JsonConfig{
		ServerEndpointAddr: cfg.ServerEndpointAddr,
		AccessToken:        cfg.AccessToken,
		MaxFileSize:        cfg.MaxFileSize,
		Concurrency:        cfg.Concurrency,
		BatchPause:         timex.Duration{Duration: cfg.BatchPause},
		MaxRetries:         cfg.MaxRetries,
		BaseDelay:          timex.Duration{Duration: cfg.BaseDelay},
		MaxDelay:           timex.Duration{Duration: cfg.MaxDelay},
		Jitter:             cfg.Jitter,
		RecoveryPasses:     cfg.RecoveryPasses,
		PassDelay:          timex.Duration{Duration: cfg.PassDelay},
		RequestTimeout:     timex.Duration{Duration: cfg.RequestTimeout},
		UploadTimeout:      timex.Duration{Duration: cfg.UploadTimeout},
		LogLevel:           cfg.LogLevel,
	}
}

// parseJson overlays cfg with the keys present in the JSON file at path.
// Keys missing from the file keep their current value.
func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	jc := toJson(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.AccessToken = jc.AccessToken
	cfg.MaxFileSize = jc.MaxFileSize
	cfg.Concurrency = jc.Concurrency
	cfg.BatchPause = time.Duration(jc.BatchPause.Duration)
	cfg.MaxRetries = jc.MaxRetries
	cfg.BaseDelay = time.Duration(jc.BaseDelay.Duration)
	cfg.MaxDelay = time.Duration(jc.MaxDelay.Duration)
	cfg.Jitter = jc.Jitter
	cfg.RecoveryPasses = jc.RecoveryPasses
	cfg.PassDelay = time.Duration(jc.PassDelay.Duration)
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	cfg.LogLevel = jc.LogLevel
	return nil
}
