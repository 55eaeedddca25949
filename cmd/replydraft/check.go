package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/replydraft/internal/ai"
	"github.com/amishk599/replydraft/internal/config"
	"github.com/amishk599/replydraft/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Args:  cobra.NoArgs,
	Short: "Verify config, profile files and the generation service",
	Long:  "Loads the config and both profile files, then checks that the generation service answers. Exits non-zero on the first failure.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func ok(format string, a ...any) {
	fmt.Printf("%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, a...))
}

func fail(format string, a ...any) {
	fmt.Printf("%s %s\n", color.RedString("✗"), fmt.Sprintf(format, a...))
	os.Exit(1)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fail("config: %v", err)
	}
	ok("config loaded (listen %s, provider %s, model %s)", cfg.ListenAddr, cfg.Generator.Provider, cfg.Generator.Model)

	profile, err := config.LoadProfile(cfg.Profile)
	if err != nil {
		fail("profile: %v", err)
	}
	ok("resume summary %s (%d chars)", cfg.Profile.ResumePath, len(profile.ResumeText))
	ok("profile about %s (%d chars)", cfg.Profile.AboutPath, len(profile.ProfileText))

	for _, name := range placeholderFields(profile) {
		fmt.Printf("%s %s is still a placeholder\n", color.YellowString("!"), name)
	}

	if cfg.Generator.Provider != "ollama" {
		ok("generator %s configured (not probed)", cfg.Generator.Provider)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	provider := ai.NewOllamaProvider(cfg.Generator.BaseURL, cfg.Generator.Model, &http.Client{})
	if err := provider.Ping(ctx); err != nil {
		fail("generation service %s: %v", cfg.Generator.BaseURL, err)
	}
	ok("generation service reachable at %s", cfg.Generator.BaseURL)
	return nil
}

// placeholderFields lists, in a fixed order, the identity fields still set to
// their built-in placeholders.
func placeholderFields(p model.Profile) []string {
	fields := []struct {
		name, value, placeholder string
	}{
		{"user name", p.UserName, config.DefaultUserName},
		{"phone number", p.PhoneNumber, config.DefaultPhoneNumber},
		{"resume link", p.ResumeLink, config.DefaultResumeLink},
	}

	var names []string
	for _, f := range fields {
		if f.value == f.placeholder {
			names = append(names, f.name)
		}
	}
	return names
}
