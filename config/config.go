// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configPath     = pflag.String("config", "config.toml", "Path to the config file")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBTypes   = []string{"sqlite", "postgres"}
	validCaches    = []string{"none", "memory", "redis"}
)

// ErrNoSecret is returned when no JWT secret is configured. A random one
// is printed so it can be pasted into the config.
var ErrNoSecret = errors.New("jwt.secret is not set")

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	err := Load(*configPath)
	if errors.Is(err, ErrNoSecret) {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	return err
}

// Load reads the config file at path on top of the defaults and the
// environment, then validates the result.
func Load(path string) error {
	SetDefaults()

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s is missing", path)
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	return Validate()
}

// SetDefaults registers the value of every key that has one
func SetDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", []string{"http://localhost:5173"})

	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.path", "database.db")

	v.SetDefault("jwt.expiry", "5m")
	v.SetDefault("jwt.issuer", "company-api")
	v.SetDefault("jwt.audience", "company-api")

	v.SetDefault("security.rate_limit", 10)
	v.SetDefault("security.max_body_size", 1<<20)

	v.SetDefault("cache.type", "none")
	v.SetDefault("cache.ttl", 15)
	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("pagination.companies_page_size", 20)
	v.SetDefault("pagination.reviews_page_size", 10)

	v.SetDefault("companies.detailed_public", false)

	v.SetDefault("seed.admin_username", "admin")
	v.SetDefault("seed.admin_email", "admin@localhost.localdomain")
}

// Validate checks the loaded values
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBTypes, v.GetString("db.type")) {
		return errors.New("invalid database type provided")
	}

	switch v.GetString("db.type") {
	case "sqlite":
		if v.GetString("db.path") == "" {
			return errors.New("db.path can't be empty")
		}
	case "postgres":
		if v.GetString("db.dsn") == "" {
			return errors.New("db.dsn can't be empty")
		}
	}

	if v.GetString("jwt.secret") == "" {
		return ErrNoSecret
	}

	if len(v.GetString("jwt.secret")) < 32 {
		return errors.New("jwt.secret must be at least 32 characters long")
	}

	if v.GetDuration("jwt.expiry") <= 0 {
		return errors.New("jwt.expiry must be a positive duration")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetInt64("security.max_body_size") <= 0 {
		return errors.New("security.max_body_size must be bigger than 0")
	}

	if !slices.Contains(validCaches, v.GetString("cache.type")) {
		return errors.New("invalid cache type provided")
	}

	if v.GetString("cache.type") == "redis" && v.GetString("redis.addr") == "" {
		return errors.New("redis.addr can't be empty when using the redis cache")
	}

	if v.GetInt("pagination.companies_page_size") <= 0 || v.GetInt("pagination.reviews_page_size") <= 0 {
		return errors.New("default page sizes must be bigger than 0")
	}

	return nil
}
