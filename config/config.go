// Package config loads process configuration from the environment once at
// startup. The resulting Config is immutable.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs. Loaded once at startup and
// passed down explicitly; never mutated afterwards.
type Config struct {
	EbayClientID     string
	EbayClientSecret string
	GeminiAPIKey     string
	OpenAIAPIKey     string // optional fallback extraction backend
	HomeCurrency     string
	DBPath           string
	ListenAddr       string
}

// requiredEnvVars must be set before any query can run. A missing entry is
// a configuration failure and fatal at startup.
var requiredEnvVars = []string{"EBAY_CLIENT_ID", "EBAY_CLIENT_SECRET", "GEMINI_API_KEY"}

// LoadEnvFile loads environment variables from a .env file in the working
// directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Missing returns the names of required environment variables that are not
// set.
func Missing() []string {
	var missing []string
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	return missing
}

// Load reads the configuration from the environment. Call Missing first;
// Load does not validate.
func Load() Config {
	cfg := Config{
		EbayClientID:     os.Getenv("EBAY_CLIENT_ID"),
		EbayClientSecret: os.Getenv("EBAY_CLIENT_SECRET"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		HomeCurrency:     os.Getenv("SNAPSCOUT_HOME_CURRENCY"),
		DBPath:           os.Getenv("SNAPSCOUT_DB_PATH"),
		ListenAddr:       os.Getenv("SNAPSCOUT_LISTEN_ADDR"),
	}
	if cfg.HomeCurrency == "" {
		cfg.HomeCurrency = "JPY"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "snapscout.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return cfg
}
