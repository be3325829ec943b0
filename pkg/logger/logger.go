// Package logger provides a zap-based application logger.
package logger

import "go.uber.org/zap"

// New configures a logger in production mode.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}
