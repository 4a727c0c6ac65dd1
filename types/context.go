package types

import (
	"github.com/rs/zerolog"

	"github.com/lepinkainen/videodash/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Config  *config.Config
	Logger  zerolog.Logger
}

// VersionOrDefault returns the build version, or DefaultVersion for a nil context.
func (c *AppContext) VersionOrDefault() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}
