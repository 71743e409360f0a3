// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Recommend RecommendConfig
	Server    ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates the datasets and the flat-file artifacts.
// File names are resolved against BasePath unless they are absolute.
type DataConfig struct {
	BasePath            string
	BooksFile           string
	ReviewsFile         string
	RecommendationsFile string
	UserInputsFile      string
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	TopN            int // Upper bound on result length (default: 10)
	SuggestionLimit int // Max fuzzy title suggestions on a no-match query (default: 5)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins (default: *)
	RateLimit    int           // Requests per minute per client IP (default: 60)
	RateBurst    int           // Burst size (default: 20)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	dataPath := flag.String("data-path", "", "Directory holding datasets and output files (default: ./datasets)")
	booksFile := flag.String("books-file", "", "Books CSV file (default: books.csv)")
	reviewsFile := flag.String("reviews-file", "", "Reviews CSV file (default: customer_reviews.csv)")
	recommendationsFile := flag.String("recommendations-file", "", "Recommendation store file (default: recommendations.txt)")
	userInputsFile := flag.String("user-inputs-file", "", "User input log file (default: user_inputs.txt)")

	topN := flag.String("top-n", "", "Maximum number of recommendations (default: 10)")
	suggestionLimit := flag.String("suggestion-limit", "", "Maximum title suggestions (default: 5)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")
	rateLimit := flag.String("rate-limit", "", "Requests per minute per client (default: 60)")
	rateBurst := flag.String("rate-burst", "", "Rate limit burst size (default: 20)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath:            getConfigValue(*dataPath, "DATA_PATH", ""),
			BooksFile:           getConfigValue(*booksFile, "BOOKS_FILE", "books.csv"),
			ReviewsFile:         getConfigValue(*reviewsFile, "REVIEWS_FILE", "customer_reviews.csv"),
			RecommendationsFile: getConfigValue(*recommendationsFile, "RECOMMENDATIONS_FILE", "recommendations.txt"),
			UserInputsFile:      getConfigValue(*userInputsFile, "USER_INPUTS_FILE", "user_inputs.txt"),
		},
		Recommend: RecommendConfig{
			TopN:            getIntConfigValue(*topN, "TOP_N", 10),
			SuggestionLimit: getIntConfigValue(*suggestionLimit, "SUGGESTION_LIMIT", 5),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
			RateLimit:   getIntConfigValue(*rateLimit, "RATE_LIMIT", 60),
			RateBurst:   getIntConfigValue(*rateBurst, "RATE_BURST", 20),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	if cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}

	if err := cfg.expandDataPaths(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}
	if c.Data.BooksFile == "" || c.Data.ReviewsFile == "" {
		return errors.New("books and reviews files are required")
	}
	if c.Data.RecommendationsFile == "" || c.Data.UserInputsFile == "" {
		return errors.New("recommendations and user inputs files are required")
	}

	if c.Recommend.TopN < 1 {
		return fmt.Errorf("top n must be positive, got %d", c.Recommend.TopN)
	}
	if c.Recommend.SuggestionLimit < 0 {
		return fmt.Errorf("suggestion limit cannot be negative, got %d", c.Recommend.SuggestionLimit)
	}

	if c.Server.RateLimit < 1 || c.Server.RateBurst < 1 {
		return errors.New("rate limit and burst must be positive")
	}

	return nil
}

// BooksPath returns the resolved path of the books dataset.
func (d DataConfig) BooksPath() string { return d.resolve(d.BooksFile) }

// ReviewsPath returns the resolved path of the reviews dataset.
func (d DataConfig) ReviewsPath() string { return d.resolve(d.ReviewsFile) }

// RecommendationsPath returns the resolved path of the recommendation store.
func (d DataConfig) RecommendationsPath() string { return d.resolve(d.RecommendationsFile) }

// UserInputsPath returns the resolved path of the user input log.
func (d DataConfig) UserInputsPath() string { return d.resolve(d.UserInputsFile) }

func (d DataConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.BasePath, name)
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is used.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPaths makes the base path absolute (default ./datasets) and
// expands a leading ~ in any configured file name.
func (c *Config) expandDataPaths() error {
	base, err := expandPath(c.Data.BasePath, "datasets")
	if err != nil {
		return err
	}
	c.Data.BasePath = base

	for _, name := range []*string{
		&c.Data.BooksFile,
		&c.Data.ReviewsFile,
		&c.Data.RecommendationsFile,
		&c.Data.UserInputsFile,
	} {
		if strings.HasPrefix(*name, "~/") {
			expanded, err := expandPath(*name, "")
			if err != nil {
				return err
			}
			*name = expanded
		}
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
// Unparsable values fall back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
