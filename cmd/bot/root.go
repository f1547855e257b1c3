package main

import (
	"github.com/PoluyanbIch/quizbot/internal/config"
	"github.com/spf13/cobra"
)

type options struct {
	questions string
	locale    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "quizbot",
		Short:         "Telegram quiz bot",
		Long:          "quizbot runs a Telegram bot that quizzes users on built-in or user submitted multiple-choice question sets.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.questions, "questions", "", "question source file (.json, .yaml, .yml or .xlsx)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "message locale (uz or en)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
	)

	return rootCmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.questions != "" {
		cfg.QuestionsPath = opts.questions
	}
	if opts.locale != "" {
		cfg.Locale = opts.locale
	}
	return cfg, nil
}
