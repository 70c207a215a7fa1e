package utils

import (
	"os"
	"strconv"
	"strings"
)

// Environment utilities
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		// NO_COLOR convention: any non-empty value means true
		return true
	}
	return defaultValue
}

// NormalizeText lowercases and trims a search term
func NormalizeText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	LogDebug("Normalized text: '%s' -> '%s'", text, normalized)
	return normalized
}
