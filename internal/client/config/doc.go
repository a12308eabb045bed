// Package config loads runtime configuration for the radicar CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config / -c.
//  3. Command-line flags registered by BindFlags, which override the file.
//
// # JSON schema
//
// Durations accept strings like "300ms" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "concurrency": 3,
//	  "batch_pause": "300ms",
//	  "max_retries": 5,
//	  "base_delay": "1.5s",
//	  "recovery_passes": 3,
//	  "pass_delay": "5s"
//	}
package config
