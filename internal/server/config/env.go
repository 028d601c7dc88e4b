package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	envAddr          = "TASKKEEPER_ADDR"
	envDatabaseDSN   = "TASKKEEPER_DATABASE_DSN"
	envSecretKey     = "TASKKEEPER_SECRET_KEY"
	envTokenValidity = "TASKKEEPER_TOKEN_VALIDITY"
	envStorageTO     = "TASKKEEPER_STORAGE_TIMEOUT"
	envHashWorkers   = "TASKKEEPER_HASH_WORKERS"
	envBcryptCost    = "TASKKEEPER_BCRYPT_COST"
	envCORSOrigins   = "TASKKEEPER_CORS_ORIGINS"
	envShutdownTO    = "TASKKEEPER_SHUTDOWN_TIMEOUT"
	envGinMode       = "GIN_MODE"
)

// parseEnv overlays values from the process environment. A dotenv file is
// loaded first: the path given with -env, or ".env" in the working directory
// when present. Variables already set in the environment are not overridden
// by the file. Malformed numeric or duration values are ignored.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	setString(&config.EndpointAddrHTTP, envAddr)
	setString(&config.DatabaseDSN, envDatabaseDSN)
	setString(&config.SecretKey, envSecretKey)
	setDuration(&config.TokenValidityDuration, envTokenValidity)
	setDuration(&config.StorageTimeout, envStorageTO)
	setInt(&config.HashWorkers, envHashWorkers)
	setInt(&config.BcryptCost, envBcryptCost)
	setString(&config.CORSAllowedOrigins, envCORSOrigins)
	setDuration(&config.ShutdownTimeout, envShutdownTO)
	setString(&config.GinMode, envGinMode)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
