package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/eventboard/internal/flagx"
)

// parseEnv overlays values from environment variables named in the Config
// struct tags. Variables that are not set leave the current value untouched.
//
// A dotenv file given with -env-file is loaded first and must exist; without
// the flag a ./.env file is loaded if present. Variables already set in the
// process environment always win over the file.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
