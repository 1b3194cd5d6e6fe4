// Package client talks to the GophVault server.
//
// It provides a transport-agnostic Client contract and a gRPC
// implementation (GRPCClient) that injects the access token into every
// call, transparently refreshes an expired token once, and maps gRPC
// status codes to the sentinel errors in errors.go.
//
// Master passwords are accepted as byte slices so callers can wipe them;
// the client never stores them.
package client
