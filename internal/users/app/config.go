package app

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      int    `env:"PORT,                default=8080"`
	Env       string `env:"ENV,                 default=dev"`
	LogLevel  string `env:"LOG_LEVEL,           default=info"`
	LogFormat string `env:"LOG_FORMAT,          default=json"`

	DatabaseFile string `env:"USERD_DATABASE_FILE, default=userd.db"`

	// AdminUsername/AdminPassword seed the default administrator account on
	// an empty store. Override the password outside of development.
	AdminUsername string `env:"USERD_ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"USERD_ADMIN_PASSWORD, default=admin"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
