package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New - собирает сервисный zerolog логгер. Уровень берется из LOG_LEVEL,
// по умолчанию info.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err == nil {
			level = parsed
		}
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "africlick").
		Logger()
}
