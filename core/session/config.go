package session

// Config holds configuration for login sessions.
type Config struct {
	// RedisURL points at the session store (redis://host:6379/0). Empty keeps
	// sessions in process memory.
	RedisURL string `mapstructure:"redis_url" default:""`
	// TTLMinutes is how long a session stays valid after login.
	TTLMinutes int `mapstructure:"ttl_minutes" default:"120"`
}
