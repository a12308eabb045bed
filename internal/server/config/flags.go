package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/flagx"
)

// parseFlags overlays command-line flags onto config. Only the flags below
// are picked out of args, so -c/-config and foreign flags are ignored.
//
//	-a string   gRPC bind address
//	-d string   PostgreSQL DSN (empty: in-memory repository)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-k string   storage backend: s3, minio or memory
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-m string   memory store listen address
//	-l string   memory store public base URL
//	-x int      signed URL validity, minutes
//	-y int      expiry grace after URL validity, minutes
//	-q string   Redis address for the expiry queue (empty: in-process sweeper)
//	-v string   log level
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend (s3, minio, memory)")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.MemoryStoreAddr, "m", config.MemoryStoreAddr, "memory store listen address")
	fs.StringVar(&config.MemoryStoreBaseURL, "l", config.MemoryStoreBaseURL, "memory store public base URL")

	signedURLTTL := fs.Int("x", int(config.SignedURLTTL.Minutes()), "signed URL validity (in minutes)")
	expiryGrace := fs.Int("y", int(config.ExpiryGrace.Minutes()), "expiry grace (in minutes)")
	fs.StringVar(&config.RedisAddr, "q", config.RedisAddr, "redis address")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := flagx.ParseKnown(fs, args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] {
		config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	}
	if set["x"] {
		config.SignedURLTTL = time.Duration(*signedURLTTL) * time.Minute
	}
	if set["y"] {
		config.ExpiryGrace = time.Duration(*expiryGrace) * time.Minute
	}
	return nil
}
