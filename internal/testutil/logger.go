package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger built the same way as the
// service logger, plus the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Output: &buf})
	return logger, &buf
}
