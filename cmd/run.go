package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizbit/internal/app"
	"github.com/abhisek/quizbit/internal/logger"
	"github.com/abhisek/quizbit/internal/questions"
)

// runApp loads configuration and the question set, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	qs, err := questions.Load(cfg.QuestionsPath)
	if err != nil {
		log.Error("load questions", zap.String("path", cfg.QuestionsPath), zap.Error(err))
		return fmt.Errorf("load questions: %w", err)
	}

	skipWelcome, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Questions:   qs,
		TimeLimit:   cfg.TimeLimit,
		Logger:      log,
		SkipWelcome: skipWelcome,
	})
}
