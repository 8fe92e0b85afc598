package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger every component logger derives from. Each
// line carries the service and environment so logs from several demo
// processes sharing one store backend stay tellable apart.
func New(service, environment string) zerolog.Logger {
	return newLogger(os.Stdout, service, environment)
}

func newLogger(out io.Writer, service, environment string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", service).
		Str("env", environment).
		Logger()

	if environment != "production" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return logger
}
