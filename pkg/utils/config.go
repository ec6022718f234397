package utils

import (
	"log"
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config provides thread-safe access to configuration values loaded from
// environment variables and optional .env files
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance by loading the given .env
// files (missing files are skipped) and then snapshotting the process
// environment, with the environment taking precedence
func NewConfigFromEnv(files ...string) *Config {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Printf("[CONFIG]: Warning, could not load %s: %v", file, err)
		}
	}

	values := make(map[string]string)
	for _, env := range os.Environ() {
		if key, value, ok := strings.Cut(env, "="); ok && key != "" {
			values[key] = value
		}
	}

	return NewConfig(values)
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, exists := c.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

// GetIntWithDefault retrieves a configuration value as an integer with a
// fallback default for missing or unparseable values
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetBoolWithDefault retrieves a configuration value as a boolean with a
// fallback default for missing or unparseable values
func (c *Config) GetBoolWithDefault(key string, defaultValue bool) bool {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.values[key]
	return exists
}

// Keys returns all configuration keys
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}
