// Package tlsx turns the TLS settings of the server and client configs into
// gRPC transport credentials.
package tlsx

import (
	"crypto/tls"
	"errors"
	"fmt"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

var ErrIncompleteKeyPair = errors.New("tls needs both a certificate and a key file")

// ServerCredentials loads the server key pair. It returns nil credentials
// when neither file is set, which means plaintext.
func ServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	if certFile == "" && keyFile == "" {
		return nil, nil
	}
	if certFile == "" || keyFile == "" {
		return nil, ErrIncompleteKeyPair
	}

	creds, err := credentials.NewServerTLSFromFile(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load server key pair: %w", err)
	}
	return creds, nil
}

// ClientCredentials trusts caFile when given, the system roots when only
// enabled is set, and falls back to plaintext otherwise.
func ClientCredentials(enabled bool, caFile string) (credentials.TransportCredentials, error) {
	switch {
	case caFile != "":
		creds, err := credentials.NewClientTLSFromFile(caFile, "")
		if err != nil {
			return nil, fmt.Errorf("load CA certificate: %w", err)
		}
		return creds, nil
	case enabled:
		return credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}), nil
	default:
		return insecure.NewCredentials(), nil
	}
}
