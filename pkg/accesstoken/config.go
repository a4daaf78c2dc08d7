package accesstoken

import "time"

// Config holds token store configuration.
type Config struct {
	TTL           time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"ACCESS_TOKEN_SWEEP_INTERVAL" envDefault:"10m"`
}
