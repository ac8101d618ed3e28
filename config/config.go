package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		ExternalAPI struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"externalAPI"`
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		Timeout time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Concierge ConciergeConfig `mapstructure:"concierge"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

// ConciergeConfig tunes the scripted dialogue: how long sessions live in the
// in-memory store and the pacing offsets used for staggered message delivery.
type ConciergeConfig struct {
	SessionTTL       time.Duration `mapstructure:"sessionTTL"`
	GreetingDelay    time.Duration `mapstructure:"greetingDelay"`
	StepDelay        time.Duration `mapstructure:"stepDelay"`
	ParagraphStagger time.Duration `mapstructure:"paragraphStagger"`
}

// AssistantConfig drives the LLM-backed freeform chat mode.
type AssistantConfig struct {
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// AdminConfig holds the staff-token secret for the admin lead endpoints.
type AdminConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Fall back to the embedded copy so the binary runs without a config dir.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	// Secrets never live in the yaml; the env always wins.
	if secret := os.Getenv("LIV_ADMIN_JWT_SECRET"); secret != "" {
		config.Admin.JWTSecret = secret
	}

	return config, nil
}
