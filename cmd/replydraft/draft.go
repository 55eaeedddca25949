package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/replydraft/internal/model"
	"github.com/amishk599/replydraft/internal/tui"
)

var (
	draftMessage  string
	draftHeadline string
	draftThread   string
	draftPlain    bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Args:  cobra.NoArgs,
	Short: "Draft one reply from the terminal",
	Long: "Draft a reply for a single message without starting the server.\n" +
		"The message comes from --message or, when omitted, from stdin.",
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().StringVarP(&draftMessage, "message", "m", "", "recruiter message (default: read stdin)")
	draftCmd.Flags().StringVar(&draftHeadline, "headline", "", "sender headline")
	draftCmd.Flags().StringVar(&draftThread, "thread", "", "prior conversation text")
	draftCmd.Flags().BoolVar(&draftPlain, "plain", false, "print the reply to stdout instead of opening the viewer")
	rootCmd.AddCommand(draftCmd)
}

// readDraftRequest builds the request from flags, falling back to stdin for the message.
func readDraftRequest(stdin io.Reader) (model.GenerateRequest, error) {
	msg := draftMessage
	if msg == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return model.GenerateRequest{}, fmt.Errorf("read message from stdin: %w", err)
		}
		msg = strings.TrimSpace(string(data))
	}

	req := model.GenerateRequest{Message: msg}
	if draftHeadline != "" {
		req.SenderHeadline = &draftHeadline
	}
	if draftThread != "" {
		req.ThreadContext = &draftThread
	}
	return req, nil
}

func runDraft(cmd *cobra.Command, args []string) error {
	// Plain mode keeps stdout for the reply only; the viewer owns the terminal otherwise.
	logLevel := slog.LevelWarn
	if debug {
		logLevel = slog.LevelDebug
	}
	var logger *slog.Logger
	if draftPlain {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	drafter, _, _, err := setupDrafter(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}

	req, err := readDraftRequest(cmd.InOrStdin())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}

	if draftPlain {
		resp, err := drafter.Draft(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "reason:", resp.Reason)
		fmt.Println(resp.Reply)
		return nil
	}

	resp, err := tui.RunLoader(ctx, "Drafting reply", func(ctx context.Context) (model.GenerateResponse, error) {
		return drafter.Draft(ctx, req)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}

	// The viewer hides the prompt toggle when the prompt is empty.
	prompt, err := drafter.Prompt(req)
	if err != nil {
		logger.Debug("render prompt for viewer", "error", err)
		prompt = ""
	}
	return tui.RunViewer(resp, prompt)
}
