package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Port            string
	CatalogPath     string
	ImageSource     string
	ViewsDir        string
	PublicDir       string
	CacheTTL        time.Duration
	CredentialsFile string
	LogFile         string
}

// ErrInvalidImageSource is returned when IMAGE_SOURCE has an unknown scheme
var ErrInvalidImageSource = errors.New("IMAGE_SOURCE must be dir:<path>, http(s)://<host> or gs://<bucket>")

// ErrInvalidCacheTTL is returned when CACHE_TTL is not a positive duration
var ErrInvalidCacheTTL = errors.New("CACHE_TTL must be a positive duration")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	source := os.Getenv("IMAGE_SOURCE")
	if source == "" {
		source = "dir:./public"
	}
	if !validSource(source) {
		return nil, ErrInvalidImageSource
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidCacheTTL
		}
		ttl = parsed
	}

	return &Config{
		Port:            port,
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		ImageSource:     source,
		ViewsDir:        getenv("VIEWS_DIR", "./views"),
		PublicDir:       getenv("PUBLIC_DIR", "./public"),
		CacheTTL:        ttl,
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		LogFile:         getenv("LOG_FILE", "school-gallery.log"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func validSource(source string) bool {
	for _, prefix := range []string{"dir:", "http://", "https://", "gs://"} {
		if strings.HasPrefix(source, prefix) && len(source) > len(prefix) {
			return true
		}
	}
	return false
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Gallery URL: http://localhost:%s/gallery/\n", c.Port)
	fmt.Printf("Feed URL: http://localhost:%s/feed\n", c.Port)
	fmt.Printf("Images: %s\n", c.ImageSource)
}
