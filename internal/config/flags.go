package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses command-line arguments into a partial config.
// Unset flags leave zero values so lower-priority sources are kept.
//
// Flags:
//
//	-a                HTTP listen address host:port
//	-grpc-address     gRPC listen address host:port
//	-d                database DSN
//	-c, -config       JSON config file path
//	-token-sign-key   token signing key
//	-token-issuer     token issuer
//	-hash-key         request body HMAC key
//	-request-timeout  per-request timeout (e.g. "30s")
//	-max-push-batch   maximum items per push
//	-log-level        log level
//	-cleanup-schedule cron schedule of the queue cleanup
//	-cleanup-days-old age of synced queue rows to remove
//	-s                sync server base URL (device agent)
//	-auth-token       device access token (device agent)
//	-device-id        device identifier (device agent)
//	-sync-interval    device sync period (device agent)
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress, grpcAddress NetAddress
		cfg                        StructuredConfig
		requestTimeout             time.Duration
	)

	fs := flag.NewFlagSet("field-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Request body hash key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&cfg.App.MaxPushBatch, "max-push-batch", 0, "Maximum items per push")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.Workers.CleanupSchedule, "cleanup-schedule", "", "Queue cleanup cron schedule")
	fs.IntVar(&cfg.Workers.CleanupDaysOld, "cleanup-days-old", 0, "Remove synced queue rows older than N days")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "s", "", "Sync server base URL")
	fs.StringVar(&cfg.Adapter.AuthToken, "auth-token", "", "Device access token")
	fs.StringVar(&cfg.App.DeviceID, "device-id", "", "Device identifier")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Device sync interval (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.RequestTimeout = requestTimeout
	cfg.Command = fs.Args()

	return &cfg, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be "localhost", an IP address or empty
// (all interfaces).
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
