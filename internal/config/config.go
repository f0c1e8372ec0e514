package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	TokenPath      string
	ArchivePath    string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		APIBaseURL:     getEnv("MINDMATE_API_URL", "http://localhost:8000"),
		TokenPath:      getEnv("MINDMATE_TOKEN_FILE", defaultPath("token")),
		ArchivePath:    getEnv("MINDMATE_ARCHIVE_DB", defaultPath("archive.db")),
		LogFile:        getEnv("MINDMATE_LOG_FILE", defaultPath("mindmate.log")),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		RequestTimeout: time.Duration(getEnvAsInt("MINDMATE_REQUEST_TIMEOUT", 60)) * time.Second,
	}
}

// defaultPath places client state under ~/.mindmate, falling back to the
// working directory when the home directory cannot be resolved.
func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".mindmate", name)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
