// Package config handles configuration for the server component:
// defaults, then an optional JSON file, then command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

// Storage backends accepted by StorageBackend.
const (
	StorageS3     = "s3"
	StorageMinio  = "minio"
	StorageMemory = "memory"
)

// Config holds runtime settings for the radicación server.
//
// DatabaseDSN empty selects the in-memory repository and RedisAddr empty
// replaces the asynq expiry queue with an in-process sweeper. With
// StorageBackend "memory" the server also listens on MemoryStoreAddr for
// signed uploads, advertised to clients under MemoryStoreBaseURL.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration

	StorageBackend string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3UseSSL       bool

	MemoryStoreAddr    string
	MemoryStoreBaseURL string

	SignedURLTTL  time.Duration
	ExpiryGrace   time.Duration
	SweepInterval time.Duration
	RedisAddr     string
	MaxFileSize   int64
	LogLevel      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 12 * time.Hour
	c.StorageBackend = StorageMemory
	c.S3AccessKey = "minioadmin"
	c.S3SecretKey = "minioadmin"
	c.S3Bucket = "radicaciones"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	c.S3UseSSL = false
	c.MemoryStoreAddr = ":8081"
	c.MemoryStoreBaseURL = "http://127.0.0.1:8081"
	c.SignedURLTTL = 15 * time.Minute
	c.ExpiryGrace = 30 * time.Minute
	c.SweepInterval = 5 * time.Minute
	c.RedisAddr = ""
	c.MaxFileSize = common.MaxFileSize
	c.LogLevel = "info"
}

// ExpiryDelay is how long after initiation a still-pending submission is
// reconciled by the expiry job.
func (c *Config) ExpiryDelay() time.Duration {
	return c.SignedURLTTL + c.ExpiryGrace
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// the flags in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
