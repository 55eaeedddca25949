package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/replydraft/internal/screen"
)

// Config is the root configuration for the reply relay.
type Config struct {
	ListenAddr string
	Generator  GeneratorConfig
	Profile    ProfileConfig
	Screen     ScreenConfig
}

// GeneratorConfig selects and configures the text-generation backend.
type GeneratorConfig struct {
	Provider string        // "ollama" or "gemini"
	BaseURL  string        // ollama only; /api/generate is appended
	Model    string        // model identifier sent upstream
	APIKey   string        // gemini only, expanded from env by Load
	Timeout  time.Duration // zero means no client-side deadline
}

// ProfileConfig locates the profile text files and holds identity overrides.
type ProfileConfig struct {
	ResumePath  string
	AboutPath   string
	UserName    string
	PhoneNumber string
	ResumeLink  string
	HomeRegion  string
}

// ScreenConfig controls the optional local recruiter screen.
type ScreenConfig struct {
	Enabled          bool
	HeadlineKeywords []string
	MessageKeywords  []string
}

const (
	DefaultPath       = "replydraft.yaml"
	DefaultListenAddr = "127.0.0.1:8000"
	DefaultOllamaURL  = "http://localhost:11434"
	DefaultModel      = "llama3"
	DefaultResumePath = "../resume-summary.txt"
	DefaultAboutPath  = "../linkdin-about-section.txt"
	DefaultHomeRegion = "India"

	// Placeholders used when neither the environment nor the file sets a value.
	DefaultUserName    = "Your Name"
	DefaultPhoneNumber = "YOUR_PHONE_NUMBER"
	DefaultResumeLink  = "YOUR_RESUME_LINK"
)

// Environment variables that override the identity fields.
const (
	EnvUserName    = "USER_NAME"
	EnvPhoneNumber = "PHONE_NUMBER"
	EnvResumeLink  = "RESUME_LINK"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	ListenAddr string             `yaml:"listen_addr"`
	Generator  rawGeneratorConfig `yaml:"generator"`
	Profile    rawProfileConfig   `yaml:"profile"`
	Screen     rawScreenConfig    `yaml:"screen"`
}

type rawGeneratorConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

type rawProfileConfig struct {
	ResumePath  string `yaml:"resume_path"`
	AboutPath   string `yaml:"about_path"`
	UserName    string `yaml:"user_name"`
	PhoneNumber string `yaml:"phone_number"`
	ResumeLink  string `yaml:"resume_link"`
	HomeRegion  string `yaml:"home_region"`
}

type rawScreenConfig struct {
	Enabled          bool     `yaml:"enabled"`
	HeadlineKeywords []string `yaml:"headline_keywords"`
	MessageKeywords  []string `yaml:"message_keywords"`
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML settings file at path, applies defaults and
// environment overrides, validates the result and returns it.
// An empty path skips the file and returns defaults plus environment.
func Load(path string) (*Config, error) {
	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var timeout time.Duration
	if raw.Generator.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(raw.Generator.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse generator.timeout %q: %w", raw.Generator.Timeout, err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(raw.Generator.Provider))
	if provider == "" {
		provider = "ollama"
	}

	model := raw.Generator.Model
	if model == "" && provider == "ollama" {
		model = DefaultModel
	}

	headlineKeywords := raw.Screen.HeadlineKeywords
	if headlineKeywords == nil {
		headlineKeywords = screen.DefaultHeadlineKeywords
	}
	messageKeywords := raw.Screen.MessageKeywords
	if messageKeywords == nil {
		messageKeywords = screen.DefaultMessageKeywords
	}

	cfg := &Config{
		ListenAddr: withDefault(raw.ListenAddr, DefaultListenAddr),
		Generator: GeneratorConfig{
			Provider: provider,
			BaseURL:  withDefault(raw.Generator.BaseURL, DefaultOllamaURL),
			Model:    model,
			APIKey:   raw.Generator.APIKey,
			Timeout:  timeout,
		},
		Profile: ProfileConfig{
			ResumePath:  withDefault(raw.Profile.ResumePath, DefaultResumePath),
			AboutPath:   withDefault(raw.Profile.AboutPath, DefaultAboutPath),
			UserName:    envOr(EnvUserName, withDefault(raw.Profile.UserName, DefaultUserName)),
			PhoneNumber: envOr(EnvPhoneNumber, withDefault(raw.Profile.PhoneNumber, DefaultPhoneNumber)),
			ResumeLink:  envOr(EnvResumeLink, withDefault(raw.Profile.ResumeLink, DefaultResumeLink)),
			HomeRegion:  withDefault(raw.Profile.HomeRegion, DefaultHomeRegion),
		},
		Screen: ScreenConfig{
			Enabled:          raw.Screen.Enabled,
			HeadlineKeywords: headlineKeywords,
			MessageKeywords:  messageKeywords,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}

	switch cfg.Generator.Provider {
	case "ollama":
		if !strings.HasPrefix(cfg.Generator.BaseURL, "http://") && !strings.HasPrefix(cfg.Generator.BaseURL, "https://") {
			return fmt.Errorf("generator.base_url must be an http(s) URL, got %q", cfg.Generator.BaseURL)
		}
	case "gemini":
		if cfg.Generator.APIKey == "" {
			return fmt.Errorf("generator.api_key is required when generator.provider is \"gemini\"")
		}
	default:
		return fmt.Errorf("generator.provider must be \"ollama\" or \"gemini\", got %q", cfg.Generator.Provider)
	}

	if cfg.Generator.Timeout < 0 {
		return fmt.Errorf("generator.timeout must not be negative, got %v", cfg.Generator.Timeout)
	}

	return nil
}

func withDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// envOr returns the variable's value when it is set, even if empty.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
