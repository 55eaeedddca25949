package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/replydraft/internal/prompt"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("replydraft %s (prompt %s)\n", version, prompt.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
