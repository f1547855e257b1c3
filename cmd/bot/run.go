package main

import (
	"io"
	"os"

	"github.com/PoluyanbIch/quizbot/internal/logging"
	"github.com/PoluyanbIch/quizbot/internal/service"
	"github.com/PoluyanbIch/quizbot/internal/session"
	"github.com/PoluyanbIch/quizbot/internal/telegram"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot and poll Telegram for updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd, opts)
		},
	}
}

func runBot(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	questions := service.LoadQuestionStore(cfg.QuestionsPath, logger)

	board, err := service.NewLeaderboardService(ctx, cfg.RedisURL, cfg.LeaderboardKey)
	if err != nil {
		logger.Warn("leaderboard backend unavailable, keeping results in memory", "error", err)
		board = service.NewMemoryLeaderboardService()
	}
	if closer, ok := board.(io.Closer); ok {
		defer closer.Close()
	}

	machine := session.NewMachine(questions, service.NewSeededShuffler(), session.NewMessages(cfg.Locale))

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramDebug, logger)
	if err != nil {
		return err
	}

	dispatcher := session.NewDispatcher(machine, session.NewMemoryStore(), bot, board, logger)

	logger.Info("bot is starting", "locale", cfg.Locale, "sets", len(questions.SetNames()))
	bot.Start(ctx, dispatcher)
	logger.Info("bot stopped")
	return nil
}
