package env

import "os"

// Get returns the environment value for key, falling back when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
