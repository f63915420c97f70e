package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the struct pointed to by cfg.
// Fields are mapped with `env` and `envDefault` tags:
//
//	type Config struct {
//	    HTTPPort  int    `env:"HTTP_PORT" envDefault:"8000"`
//	    JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
//	}
//
// When several variables are invalid at once, every problem is reported in a
// single error so a misconfigured deployment fails with the full list.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		var agg env.AggregateError
		if errors.As(err, &agg) && len(agg.Errors) > 1 {
			msgs := make([]string, 0, len(agg.Errors))
			for _, e := range agg.Errors {
				msgs = append(msgs, e.Error())
			}
			return fmt.Errorf("parse config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
