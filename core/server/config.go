package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// DefaultPassword is assigned by password resets and to imported accounts without one.
	DefaultPassword string `mapstructure:"default_password" default:"123456"`
	// BodyLimitMB caps request bodies; bulk imports are the largest payloads.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
	// AutoMigrate creates missing tables on startup.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
