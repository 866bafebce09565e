package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded from .env / environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	GeniusToken  string `env:"GENIUS_ACCESS_TOKEN"`
	TasteDiveKey string `env:"TASTEDIVE_API_KEY"`

	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CookiesPath string `env:"COOKIES_PATH" envDefault:"cookies.txt"`

	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"3m"`
	AloneGrace  time.Duration `env:"ALONE_GRACE" envDefault:"10s"`

	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Failed to parse config: %v", err)
	}

	return cfg
}
