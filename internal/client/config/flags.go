package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-e string   directory for downloaded vault exports
//	-tls        use TLS with the system roots
//	-tls-ca string   PEM CA bundle to trust (implies -tls)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-e", "-tls", "-tls-ca"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for vault exports")
	fs.BoolVar(&cfg.TLS, "tls", cfg.TLS, "use TLS")
	fs.StringVar(&cfg.TLSCAFile, "tls-ca", cfg.TLSCAFile, "CA certificate file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	if *timeout < 0 {
		panic(fmt.Sprintf("request timeout must not be negative: %d", *timeout))
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
