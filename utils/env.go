package utils

import "os"

// GetEnv returns the value of the environment variable key, or fallback
// when the variable is unset.
func GetEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
