package testutil

import (
	"io"
	"log/slog"

	"github.com/auth2api/auth2-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelInfo)
}
