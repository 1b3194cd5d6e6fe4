package config

import "time"

// Config holds runtime settings for the GophVault CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: upper bound for a single call. Vault calls run a
//     deliberately slow key derivation on the server, so keep this generous.
//   - ExportDir: directory (relative to the working directory) for downloaded
//     sealed vault exports.
//   - TLS / TLSCAFile: talk TLS to the server, trusting the system roots or
//     the given PEM bundle. A CA file implies TLS.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	ExportDir          string
	TLS                bool
	TLSCAFile          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 30 * time.Second
	c.ExportDir = "exports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
