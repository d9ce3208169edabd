package librevent

import (
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// ID formats accepted by Config.IDFormat
const (
	IDFormatTimestamp = "timestamp"
	IDFormatUUID      = "uuid"
)

// Config holds process-wide defaults read from the environment
type Config struct {
	LogLevel       slog.Level    `env:"LIBREVENT_LOG_LEVEL"       envDefault:"INFO"`
	IDFormat       string        `env:"LIBREVENT_ID_FORMAT"       envDefault:"timestamp"`
	DefaultTimeout time.Duration `env:"LIBREVENT_DEFAULT_TIMEOUT" envDefault:"0s"`
}

// LoadConfig parses Config from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// IDSource returns the generator selected by IDFormat
func (c Config) IDSource() (IDSource, error) {
	switch c.IDFormat {
	case "", IDFormatTimestamp:
		return TimestampID, nil
	case IDFormatUUID:
		return UUIDID, nil
	default:
		return nil, errors.Newf("unknown id format %q", c.IDFormat)
	}
}

// NewLogger returns a text logger writing to w at LogLevel
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// ActionOptions returns the NewAction options implied by the config
func (c Config) ActionOptions(w io.Writer) ([]ActionOption, error) {
	src, err := c.IDSource()
	if err != nil {
		return nil, err
	}
	return []ActionOption{
		WithIDSource(src),
		WithDefaultTimeout(c.DefaultTimeout),
		WithActionLogger(c.NewLogger(w)),
	}, nil
}

// EventOptions returns the NewEvent options implied by the config
func (c Config) EventOptions(w io.Writer) []EventOption {
	return []EventOption{WithLogger(c.NewLogger(w))}
}
