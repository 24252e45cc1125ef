package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the client needs at startup. The backend origin
// is never baked into logic; it arrives here from the environment or a flag.
type Config struct {
	ServerURL string
	Env       string
	LogFile   string
	StateFile string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerURL: getenv("CHARLA_SERVER_URL", "http://localhost:3000"),
		Env:       getenv("CHARLA_ENV", "dev"),
		LogFile:   getenv("CHARLA_LOG_FILE", "charla.log"),
		StateFile: getenv("CHARLA_STATE_FILE", ""),
	}
}
