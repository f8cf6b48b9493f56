package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDriver  = errors.New("unknown store driver")
	ErrMissingSecret  = errors.New("JWT_SECRET must be set")
	ErrMissingMongoDB = errors.New("MONGODB_URI must be set for the mongo driver")
)

const redacted = "********"

type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	StoreDriver string `yaml:"store_driver"`

	MongoURI      string        `yaml:"mongodb_uri"`
	MongoDatabase string        `yaml:"mongodb_database"`
	MongoTimeout  time.Duration `yaml:"mongodb_timeout"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`
	SQLitePath string `yaml:"sqlite_path"`

	JWTSecret   string `yaml:"jwt_secret"`
	JWTIssuer   string `yaml:"jwt_issuer"`
	JWTAudience string `yaml:"jwt_audience"`
}

var defaults = map[string]any{
	"PORT":             "8080",
	"GIN_MODE":         "debug",
	"STORE_DRIVER":     constants.DriverMongo,
	"MONGODB_URI":      "mongodb://localhost:27017",
	"MONGODB_DATABASE": constants.DefaultMongoDatabase,
	"MONGODB_TIMEOUT":  "10s",
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "marketuser",
	"DB_PASSWORD":      "marketpassword",
	"DB_NAME":          "freelance_marketplace",
	"DB_SSLMODE":       "disable",
	"SQLITE_PATH":      "marketplace.db",
	"JWT_SECRET":       "",
	"JWT_ISSUER":       "",
	"JWT_AUDIENCE":     "",
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file and the process environment, in increasing order of precedence.
// configFile may be empty, in which case CONFIG_FILE is consulted.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile == "" {
		configFile = v.GetString("CONFIG_FILE")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("MONGODB_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_TIMEOUT: %w", err)
	}

	return &Config{
		Port:          v.GetString("PORT"),
		GinMode:       v.GetString("GIN_MODE"),
		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:      v.GetString("MONGODB_URI"),
		MongoDatabase: v.GetString("MONGODB_DATABASE"),
		MongoTimeout:  timeout,
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTAudience:   v.GetString("JWT_AUDIENCE"),
	}, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case constants.DriverMongo:
		if c.MongoURI == "" {
			return ErrMissingMongoDB
		}
	case constants.DriverPostgres, constants.DriverMySQL, constants.DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	return nil
}

// YAML renders the configuration with secrets redacted.
func (c *Config) YAML() ([]byte, error) {
	safe := *c
	if safe.DBPassword != "" {
		safe.DBPassword = redacted
	}
	if safe.JWTSecret != "" {
		safe.JWTSecret = redacted
	}
	return yaml.Marshal(&safe)
}
