// Package debug provides a slog-backed query observer.
package debug

import (
	"log/slog"
	"os"
	"time"
)

// Observer logs every executed statement with its bindings and timing. It
// satisfies the executor's Observer interface and is attached per executor,
// not globally.
type Observer struct {
	logger *slog.Logger
}

// NewObserver creates an observer writing text logs to stderr at debug
// level.
func NewObserver() *Observer {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &Observer{logger: slog.New(handler)}
}

// NewObserverWithLogger creates an observer writing to an existing logger.
func NewObserverWithLogger(logger *slog.Logger) *Observer {
	return &Observer{logger: logger}
}

// QueryExecuted logs one finished statement.
func (o *Observer) QueryExecuted(query string, bindings []interface{}, elapsed time.Duration, err error) {
	if err != nil {
		o.logger.Error("query failed",
			"query", query,
			"bindings", bindings,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	o.logger.Debug("query executed",
		"query", query,
		"bindings", bindings,
		"elapsed", elapsed,
	)
}
