package main

import (
	"log/slog"
	"os"

	"github.com/magodo/slog2hclog"

	"github.com/scimbridge/endpoint-plugins/internal/plugin/sqluser"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
)

func main() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelInfo)

	// Stdout belongs to the go-plugin handshake; log to stderr.
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	logger := slog2hclog.New(slogger, logLevel)

	p := sqluser.NewPlugin()
	p.SetLogger(logger)

	gateway.Serve(p, logger)
}
