package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/healthpredictor/content"
	"github.com/gabrielmiguelok/healthpredictor/internal/signup"
	"github.com/gabrielmiguelok/healthpredictor/internal/tui"
	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
	"github.com/gabrielmiguelok/healthpredictor/plugins/auth"
)

var signupFlags struct {
	content string
	plain   bool
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account from the terminal",
	Long: `Walk through the two-step signup form interactively.

Step 1 asks for your name and email, step 2 for a password and its
confirmation. Invalid answers are explained and asked again.`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupFlags.content, "content", "", "site content YAML (overrides the embedded copy)")
	signupCmd.Flags().BoolVar(&signupFlags.plain, "plain", false, "disable colors")
}

func runSignup(cmd *cobra.Command, args []string) error {
	site, err := content.Load(signupFlags.content)
	if err != nil {
		return err
	}
	signIn, err := auth.New(auth.DefaultConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := logging.L(cmd.Context())

	flow := signup.New(
		signup.WithCompletion(func(ctx context.Context, p signup.Payload) error {
			logger.Info("account created", logging.Any("payload", p.Masked()))
			return nil
		}),
		signup.WithSignIn(func() {
			fmt.Fprintf(out, "Sign in on the web site at %s\n", signIn.SignInPath())
		}),
	)

	opts := []tui.Option{
		tui.WithTitle(site.Signup.Title),
		tui.WithSuccessMessage(site.Signup.Success),
	}
	if signupFlags.plain {
		opts = append(opts, tui.WithStyles(tui.PlainStyles()))
	}

	_, err = tui.RunSignup(cmd.Context(), tui.NewSurveyDriver(out), flow, opts...)
	return err
}
