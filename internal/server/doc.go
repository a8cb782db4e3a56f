// Package server runs the sync server's transports.
//
// It starts the HTTP API and the optional gRPC health endpoint, waits for a
// stop signal and shuts both down gracefully.
package server
