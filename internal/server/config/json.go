package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/flagx"
	"github.com/dmitrijs2005/radicacion/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept strings such
// as "15m" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	StorageBackend              string         `json:"storage_backend"`
	S3AccessKey                 string         `json:"s3_access_key"`
	S3SecretKey                 string         `json:"s3_secret_key"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3UseSSL                    bool           `json:"s3_use_ssl"`
	MemoryStoreAddr             string         `json:"memory_store_addr"`
	MemoryStoreBaseURL          string         `json:"memory_store_base_url"`
	SignedURLTTL                timex.Duration `json:"signed_url_ttl"`
	ExpiryGrace                 timex.Duration `json:"expiry_grace"`
	SweepInterval               timex.Duration `json:"sweep_interval"`
	RedisAddr                   string         `json:"redis_addr"`
	MaxFileSize                 int64          `json:"max_file_size"`
	LogLevel                    string         `json:"log_level"`
}

func toJson(c *Config) JsonConfig {
	return JsonConfig{
		EndpointAddrGRPC:            c.EndpointAddrGRPC,
		DatabaseDSN:                 c.DatabaseDSN,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		StorageBackend:              c.StorageBackend,
		S3AccessKey:                 c.S3AccessKey,
		S3SecretKey:                 c.S3SecretKey,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
		S3UseSSL:                    c.S3UseSSL,
		MemoryStoreAddr:             c.MemoryStoreAddr,
		MemoryStoreBaseURL:          c.MemoryStoreBaseURL,
		SignedURLTTL:                timex.Duration{Duration: c.SignedURLTTL},
		ExpiryGrace:                 timex.Duration{Duration: c.ExpiryGrace},
		SweepInterval:               timex.Duration{Duration: c.SweepInterval},
		RedisAddr:                   c.RedisAddr,
		MaxFileSize:                 c.MaxFileSize,
		LogLevel:                    c.LogLevel,
	}
}

// parseJson overlays the JSON file named by -c/-config onto config. Keys
// missing from the file keep their current values. No flag, no change.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.StorageBackend = c.StorageBackend
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3UseSSL = c.S3UseSSL
	config.MemoryStoreAddr = c.MemoryStoreAddr
	config.MemoryStoreBaseURL = c.MemoryStoreBaseURL
	config.SignedURLTTL = time.Duration(c.SignedURLTTL.Duration)
	config.ExpiryGrace = time.Duration(c.ExpiryGrace.Duration)
	config.SweepInterval = time.Duration(c.SweepInterval.Duration)
	config.RedisAddr = c.RedisAddr
	config.MaxFileSize = c.MaxFileSize
	config.LogLevel = c.LogLevel
	return nil
}
