// Package logging provides the driver loop's structured logger. The teacher
// library itself never logs (a pure, silent library); the driver loop is
// this module's own orchestration surface, so it gets a real logger the way
// a CLI or service entry point would, defaulting to a no-op so library
// callers of compress.Compress stay silent unless they opt in.
package logging

import "go.uber.org/zap"

// NoOp returns a SugaredLogger that discards everything, the default passed
// to compress.Compress when the caller supplies none.
func NoOp() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewDevelopment returns a human-readable, colorized-console SugaredLogger
// suitable for cmd/lcinvent.
func NewDevelopment() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
