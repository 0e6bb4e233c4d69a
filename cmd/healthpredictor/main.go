// Command healthpredictor serves the Health Predictor site and offers the
// signup flow and health tips in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/healthpredictor/internal/tui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "healthpredictor",
	Short: "Health Predictor AI site and tools",
	Long: `Health Predictor AI predicts lifestyle disease risks.

Commands:
  serve   - Run the web site
  signup  - Create an account from the terminal
  tips    - Print health tips`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "healthpredictor v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, signupCmd, tipsCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
