package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/OFFIS-RIT/paperkg/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env from the working directory, plus the file named by
// PAPERKG_ENV_FILE when set. Variables already present in the process
// environment take precedence over both.
func LoadEnv() {
	files := []string{".env"}
	if extra := strings.TrimSpace(os.Getenv("PAPERKG_ENV_FILE")); extra != "" {
		files = append(files, extra)
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			logger.Debug("Env file not loaded", "file", f, "err", err)
		}
	}
}

// GetEnv returns the raw value of key or "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvString returns the value of key, or defaultValue when it is unset or
// blank.
func GetEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt reads an integer variable, falling back to defaultValue when the
// variable is unset, blank or not a number.
func GetEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Ignoring non-integer environment value", "key", key, "value", value)
		return defaultValue
	}
	return n
}

// GetEnvBool accepts the spellings of strconv.ParseBool. Anything else
// yields defaultValue.
func GetEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}
