package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DiscordToken string
	GitHubToken  string
	RepoOwner    string
	RepoName     string
	DatabasePath string
	HealthAddr   string
}

// Load reads configuration from environment variables and validates required
// fields. A .env file in the working directory is loaded first when present
// (local development only; containers inject real environment variables).
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		RepoOwner:    os.Getenv("GITHUB_REPO_OWNER"),
		RepoName:     os.Getenv("GITHUB_REPO_NAME"),
		DatabasePath: getEnv("DATABASE_PATH", "/app/data/bot_data.db"),
		HealthAddr:   getEnv("HEALTH_ADDR", ":8081"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Repository returns the target repository in owner/name form.
func (c Config) Repository() string {
	return c.RepoOwner + "/" + c.RepoName
}

func (c Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DISCORD_TOKEN", c.DiscordToken},
		{"GITHUB_TOKEN", c.GitHubToken},
		{"GITHUB_REPO_OWNER", c.RepoOwner},
		{"GITHUB_REPO_NAME", c.RepoName},
	}

	var missing []string
	for _, v := range required {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
