package main

import (
	"fmt"

	"github.com/PoluyanbIch/quizbot/internal/logging"
	"github.com/PoluyanbIch/quizbot/internal/service"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Load a question source and report how many questions each set keeps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			path := cfg.QuestionsPath
			if len(args) == 1 {
				path = args[0]
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			sets, err := service.ParseQuestionSets(path, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, set := range sets {
				fmt.Fprintf(out, "%s: %d questions\n", set.Name, len(set.Questions))
				total += len(set.Questions)
			}
			fmt.Fprintf(out, "%d sets, %d questions\n", len(sets), total)
			return nil
		},
	}
}
