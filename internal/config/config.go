package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string
	WhitelistFile string
	MongoDBURI    string
	DatabaseName  string
	Port          string
	UploadURL     string
}

func Load() *Config {
	_ = godotenv.Load()

	required := []string{
		"BOT_TOKEN",
	}

	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		WhitelistFile: getEnv("WHITELIST_FILE", ".whitelist"),
		MongoDBURI:    os.Getenv("MONGODB_URI"),
		DatabaseName:  getEnv("DATABASE_NAME", "gif_translate_bot"),
		Port:          getEnv("PORT", "8080"),
		UploadURL:     getEnv("UPLOAD_URL", "https://uguu.se/upload"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
