package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes the global logger to a file: stdout belongs to the terminal UI.
// The caller closes the returned file on exit.
func Init(env, path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "dev" {
		cw := zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
		log.Logger = zerolog.New(cw).With().Timestamp().Logger()
		return f, nil
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
