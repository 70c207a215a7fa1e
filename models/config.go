package models

// AppConfig holds runtime settings read from the environment
type AppConfig struct {
	Port     string
	DBPath   string
	LogLevel string
	LogFile  string
	NoColor  bool
}
