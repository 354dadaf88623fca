package utils

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads variables from a .env file if one exists. Missing files
// are fine; deployed environments set everything through the process environment.
func LoadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		LogError(err, "Failed to load env file "+path)
	}
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
