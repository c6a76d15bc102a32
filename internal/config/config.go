// Package config reads bookgraph settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/hanpama/bookgraph/internal/logger"
)

type Config struct {
	Server  *ServerConfig
	Logger  *logger.Config
	Tracing *TracingConfig
	Store   *StoreConfig
}

type ServerConfig struct {
	Addr          string        `env:"BOOKGRAPH_ADDR" envDefault:":4000"`
	Timeout       time.Duration `env:"BOOKGRAPH_TIMEOUT" envDefault:"10s"`
	Pretty        bool          `env:"BOOKGRAPH_PRETTY" envDefault:"false"`
	GraphiQL      bool          `env:"BOOKGRAPH_GRAPHIQL" envDefault:"true"`
	Introspection bool          `env:"BOOKGRAPH_INTROSPECTION" envDefault:"true"`
	MaxBodyBytes  int64         `env:"BOOKGRAPH_MAX_BODY_BYTES" envDefault:"1048576"`
	CORSOrigins   []string      `env:"BOOKGRAPH_CORS_ORIGINS" envSeparator:","`
}

type TracingConfig struct {
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"bookgraph"`
}

type StoreConfig struct {
	Seed             bool `env:"BOOKGRAPH_SEED" envDefault:"true"`
	StrictAuthorRefs bool `env:"BOOKGRAPH_STRICT_AUTHOR_REFS" envDefault:"false"`
}

// Load reads the given dotenv files (".env" when none are named) and parses
// the environment. Missing dotenv files are ignored; variables already set in
// the environment win over file values.
func Load(files ...string) (*Config, error) {
	cfg := &Config{
		Server:  &ServerConfig{},
		Logger:  &logger.Config{},
		Tracing: &TracingConfig{},
		Store:   &StoreConfig{},
	}

	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}
