package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger returns a console logger tagged with app.
func NewLogger(app string, out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// InitLogger builds a stdout logger and installs it as the global zerolog logger.
func InitLogger(app string, level zerolog.Level) zerolog.Logger {
	logger := NewLogger(app, os.Stdout, level)
	log.Logger = logger
	return logger
}
