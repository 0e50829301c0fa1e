package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays configuration from AUTHMAINT_-prefixed environment
// variables onto cfg. Unset variables leave the current values in place.
func parseEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: "AUTHMAINT_"})
}
