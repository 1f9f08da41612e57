package configs

import (
	"fmt"
	"log"
	"strings"

	"line-knowledge-bot/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App        `mapstructure:"app"`
	Admin      `mapstructure:"admin"`
	Postgres   `mapstructure:"postgres"`
	Line       `mapstructure:"line"`
	Gemini     `mapstructure:"gemini"`
	Session    `mapstructure:"session"`
	Store      `mapstructure:"store"`
	Upload     `mapstructure:"upload"`
	Conversion `mapstructure:"conversion"`
	Citation   `mapstructure:"citation"`
	Query      `mapstructure:"query"`
	Log        `mapstructure:"log"`
}

// App struct - CorsAllowedOrigins is a comma separated list, empty disables CORS
type App struct {
	Debug              bool   `mapstructure:"debug"`
	Env                string `mapstructure:"env"`
	Port               string `mapstructure:"port"`
	CorsAllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

// Admin struct - the ingestion log API is only routed when Enabled
type Admin struct {
	Enabled bool `mapstructure:"enabled"`
}

// Postgres struct - the ingestion log database, only used when Enabled
type Postgres struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret" validate:"required"`
	ChannelToken  string `mapstructure:"channel_token" validate:"required"`
}

// Gemini struct
type Gemini struct {
	APIKey      string   `mapstructure:"api_key" validate:"required"`
	Model       string   `mapstructure:"model"`
	Temperature *float32 `mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
	MaxAttempts uint     `mapstructure:"max_attempts"`
}

// Session struct - durations in minutes, 0 applies the default
type Session struct {
	Timeout       int    `mapstructure:"timeout" validate:"gte=0"`
	SweepInterval int    `mapstructure:"sweep_interval" validate:"gte=0"`
	SystemPrompt  string `mapstructure:"system_prompt"`
}

// Store struct
type Store struct {
	SingleFlight bool `mapstructure:"single_flight"`
}

// Upload struct - intervals in seconds, 0 applies the default
type Upload struct {
	Dir          string `mapstructure:"dir"`
	PollInterval int    `mapstructure:"poll_interval" validate:"gte=0"`
	PollCeiling  int    `mapstructure:"poll_ceiling" validate:"gte=0"`
}

// Conversion struct - timeouts in seconds, 0 applies the default
type Conversion struct {
	Commands            []string `mapstructure:"commands"`
	DocumentTimeout     int      `mapstructure:"document_timeout" validate:"gte=0"`
	PresentationTimeout int      `mapstructure:"presentation_timeout" validate:"gte=0"`
}

// Citation struct - TTL in minutes, 0 never expires
type Citation struct {
	MaxStores int `mapstructure:"max_stores" validate:"gte=0"`
	TTL       int `mapstructure:"ttl" validate:"gte=0"`
}

// Query struct
type Query struct {
	UseSession bool `mapstructure:"use_session"`
}

// Log struct
type Log struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

// Validate func - checks required keys and ranges of the loaded config
func (c *Config) Validate() error {
	if err := validator.New().ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %s", strings.Join(validator.Messages(err), "; "))
	}
	return nil
}

func getConfig(path, env string) {
	name := "config"
	if env != "" {
		name = "config." + env
	}
	viper.SetConfigName(name)
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && env != "" {
		log.Printf("Config file %s not found, falling back to config", name)
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	config = Config{}
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
