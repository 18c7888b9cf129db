package local

import (
	"time"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// Config holds all information needed to create an output file.
type Config struct {
	Path string

	// Retries is the number of extra attempts made for transient errors.
	Retries uint64

	// RetryInterval is the initial delay between attempts.
	RetryInterval time.Duration
}

// NewConfig returns a new config with default options applied.
func NewConfig(path string) Config {
	return Config{
		Path:          path,
		Retries:       3,
		RetryInterval: 50 * time.Millisecond,
	}
}

// Validate checks the config for errors.
func (cfg Config) Validate() error {
	if cfg.Path == "" {
		return errors.New("output path is empty")
	}
	return nil
}
