package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/adamspd/StudyGuide/models"
	"github.com/joho/godotenv"
)

const (
	DefaultPort   = 8043
	DefaultDBPath = "file:studyguide?mode=memory&cache=shared"
)

// LoadConfig reads settings from the environment after applying envFile, if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (models.AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return models.AppConfig{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return models.AppConfig{
		Port:     strconv.Itoa(GetEnvInt("PORT", DefaultPort)),
		DBPath:   GetEnvOrDefault("DB_PATH", DefaultDBPath),
		LogLevel: GetEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  GetEnvOrDefault("LOG_FILE", ""),
		NoColor:  GetEnvBool("NO_COLOR", false),
	}, nil
}
