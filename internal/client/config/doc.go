// Package config loads runtime configuration for the GophVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c / -config, or via
//     $GOPHVAULT_CONFIG when no flag is given.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-t int      request timeout (seconds)
//	-e string   directory for downloaded vault exports
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "30s",
//	  "export_dir": "exports"
//	}
package config
