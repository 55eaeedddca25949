package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/replydraft/internal/ai"
	"github.com/amishk599/replydraft/internal/config"
	"github.com/amishk599/replydraft/internal/model"
	"github.com/amishk599/replydraft/internal/screen"
)

var (
	cfgPath string
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "replydraft",
	Short: "Draft LinkedIn replies to recruiter messages with a local LLM",
	Long: "replydraft runs a loopback HTTP relay that turns a recruiter message into a drafted reply,\n" +
		"grounded only in your resume summary and LinkedIn about text.",
	// Default to `serve` so that `replydraft` with no args runs the relay.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: REPLYDRAFT_CONFIG env var or ./replydraft.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading config")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads the dotenv file, resolves the config path and parses it.
// Priority: explicit path arg > REPLYDRAFT_CONFIG env var > "./replydraft.yaml" if it exists > defaults only.
func loadConfig(path string) (*config.Config, error) {
	// A broken dotenv file is reported but never blocks startup.
	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v (ignored)\n", color.YellowString("!"), err)
	}
	if path == "" {
		if env := os.Getenv("REPLYDRAFT_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", config.DefaultPath, err)
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// newHTTPClient returns the shared upstream client. A zero timeout leaves
// the call without a client-side deadline.
func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Generator.Timeout}
}

func setupProvider(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (ai.Provider, error) {
	switch cfg.Generator.Provider {
	case "gemini":
		logger.Info("using gemini provider", "model", cfg.Generator.Model)
		p, err := ai.NewGeminiProvider(ctx, cfg.Generator.APIKey, cfg.Generator.Model, "", httpClient)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		logger.Info("using ollama provider", "base_url", cfg.Generator.BaseURL, "model", cfg.Generator.Model)
		return ai.NewOllamaProvider(cfg.Generator.BaseURL, cfg.Generator.Model, httpClient), nil
	}
}

func setupScreen(cfg *config.Config, logger *slog.Logger) ai.Screen {
	if !cfg.Screen.Enabled {
		return nil
	}
	logger.Info("local recruiter screen enabled",
		"headline_keywords", len(cfg.Screen.HeadlineKeywords),
		"message_keywords", len(cfg.Screen.MessageKeywords),
	)
	return screen.NewKeywordScreen(cfg.Screen.HeadlineKeywords, cfg.Screen.MessageKeywords)
}

// setupDrafter loads config and profile and wires the drafter. Any error
// here is fatal for the calling command.
func setupDrafter(ctx context.Context, logger *slog.Logger) (*ai.Drafter, *config.Config, model.Profile, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, model.Profile{}, fmt.Errorf("load config: %w", err)
	}

	profile, err := config.LoadProfile(cfg.Profile)
	if err != nil {
		return nil, nil, model.Profile{}, err
	}

	logger.Info("profile loaded",
		"user_name", profile.UserName,
		"resume_path", cfg.Profile.ResumePath,
		"resume_chars", len(profile.ResumeText),
		"about_path", cfg.Profile.AboutPath,
		"about_chars", len(profile.ProfileText),
	)

	provider, err := setupProvider(ctx, cfg, newHTTPClient(cfg), logger)
	if err != nil {
		return nil, nil, model.Profile{}, err
	}

	return ai.NewDrafter(profile, provider, setupScreen(cfg, logger), logger), cfg, profile, nil
}
