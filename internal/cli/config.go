package cli

import (
	"fmt"
	"os"
)

// ServerEnv names the environment variable holding the default server URL
const ServerEnv = "TTT_SERVER"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	NoColor   bool
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault(ServerEnv, "http://localhost:8080"),
		Output:    FormatText,
		NoColor:   os.Getenv("NO_COLOR") != "",
		Verbose:   false,
	}
}

// Validate checks flag values after parsing
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, FormatText, FormatJSON)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
