package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Args:  cobra.NoArgs,
	Short: "Print the prompt that would be sent upstream",
	Long:  "Renders the instruction prompt for a message (flags as for draft) without calling the generation service.",
	RunE:  runPrompt,
}

func init() {
	promptCmd.Flags().StringVarP(&draftMessage, "message", "m", "", "recruiter message (default: read stdin)")
	promptCmd.Flags().StringVar(&draftHeadline, "headline", "", "sender headline")
	promptCmd.Flags().StringVar(&draftThread, "thread", "", "prior conversation text")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	drafter, _, _, err := setupDrafter(context.Background(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load: %v\n", err)
		os.Exit(1)
	}

	req, err := readDraftRequest(cmd.InOrStdin())
	if err != nil {
		return err
	}

	p, err := drafter.Prompt(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
