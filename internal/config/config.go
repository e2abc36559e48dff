package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Backup BackupConfig
	CORS   CORSConfig
	Notify NotifyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// DBConfig selects the primary store: a Postgres URL when set, the
// in-memory store otherwise.
type DBConfig struct {
	URL string `envconfig:"DATABASE_URL"`
}

type BackupConfig struct {
	Dir      string `envconfig:"BACKUP_DIR" default:"data"`
	Schedule string `envconfig:"BACKUP_SCHEDULE" default:"@every 10m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type NotifyConfig struct {
	SendGridAPIKey    string `envconfig:"SENDGRID_API_KEY"`
	SendGridFromEmail string `envconfig:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `envconfig:"SENDGRID_FROM_NAME"`
	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber  string `envconfig:"TWILIO_FROM_NUMBER"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing env config: %w", err)
	}
	return cfg, nil
}
