package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// local .env file first if one exists (missing files are fine).
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	DATABASE_DSN    full PostgreSQL DSN; wins over the discrete DB_* parts
//	DB_HOST DB_USER DB_PASSWORD DB_NAME
//	                discrete connection parameters composed into a DSN
//	AUTH_SECRET     JWT signing secret
//	TOKEN_VALIDITY  token lifetime, time.ParseDuration format
//	BCRYPT_COST     password hash cost factor
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}

	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	} else if host := os.Getenv("DB_HOST"); host != "" {
		config.DatabaseDSN = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host, os.Getenv("DB_NAME"))
	}

	if v := os.Getenv("AUTH_SECRET"); v != "" {
		config.SecretKey = v
	}

	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = cost
	}
}
