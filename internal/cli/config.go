package cli

import (
	"errors"
	"fmt"

	"github.com/mememaster/lobby/internal/factory"
)

// Config holds CLI configuration
type Config struct {
	bind       string
	port       int
	baseURL    string
	storage    string
	redisURL   string
	imageURL   string
	minPlayers int
	verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		bind:       "0.0.0.0",
		port:       8080,
		baseURL:    "",
		storage:    factory.StorageTypeMemory,
		minPlayers: 0,
		verbose:    false,
	}
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.redisURL == "" {
			return errors.New("--redis-url is required with --storage redis")
		}
	default:
		return fmt.Errorf("invalid storage backend: %q", c.storage)
	}
	return nil
}

// resolveBaseURL is the address printed into QR join links
func (c *Config) resolveBaseURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("http://%s:%d", c.bind, c.port)
}
