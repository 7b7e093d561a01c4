// Package config loads gallery settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the cohort endpoint the gallery talks to when none is set.
const DefaultAPIURL = "https://nomoreparties.co/v1/frontend-st-cohort-201"

const defaultSessionSecret = "gallery-dev-session-secret-change-me"

// Provider exposes configuration to the rest of the application.
type Provider interface {
	GetAPIURL() string
	GetAPIToken() string
	GetTokenIsBearer() bool
	GetLanguage() string
	GetServerAddr() string
	GetSessionSecret() string
	GetLogFormat() string
	GetLogLevel() string
	Validate() error
}

// Config holds all configuration for the application.
type Config struct {
	APIURL        string
	APIToken      string
	TokenIsBearer bool
	Language      string
	ServerAddr    string
	SessionSecret string
	LogFormat     string
	LogLevel      string
}

var _ Provider = (*Config)(nil)

// ErrMissingToken is returned by Validate when no API token is configured.
var ErrMissingToken = errors.New("GALLERY_API_TOKEN is not set")

// New loads a .env file when present and reads the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads the environment without touching .env files.
func FromEnv() *Config {
	bearer, _ := strconv.ParseBool(os.Getenv("GALLERY_TOKEN_BEARER"))
	return &Config{
		APIURL:        getEnv("GALLERY_API_URL", DefaultAPIURL),
		APIToken:      os.Getenv("GALLERY_API_TOKEN"),
		TokenIsBearer: bearer,
		Language:      getEnv("GALLERY_LANG", "en"),
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogLevel:      getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Validate reports missing required values.
func (c *Config) Validate() error {
	var errs []error
	if c.APIToken == "" {
		errs = append(errs, ErrMissingToken)
	}
	if c.APIURL == "" {
		errs = append(errs, errors.New("GALLERY_API_URL is empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) GetAPIURL() string        { return c.APIURL }
func (c *Config) GetAPIToken() string      { return c.APIToken }
func (c *Config) GetTokenIsBearer() bool   { return c.TokenIsBearer }
func (c *Config) GetLanguage() string      { return c.Language }
func (c *Config) GetServerAddr() string    { return c.ServerAddr }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetLogFormat() string     { return c.LogFormat }
func (c *Config) GetLogLevel() string      { return c.LogLevel }
