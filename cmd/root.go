package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/config"
	"github.com/abhisek/quizbit/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "quizbit",
	Short: "Timed multiple-choice quiz in the terminal",
	Long: `QuizBit presents a sequence of multiple-choice questions, each with its own
countdown. Questions may have several correct options; pick exactly as many as
the question asks for, then submit before the clock runs out.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: config.yaml in ., ./config or $XDG_CONFIG_HOME/quizbit)")
	rootCmd.PersistentFlags().String("questions", "", "Path to a question set JSON file (default: the built-in set)")
	rootCmd.PersistentFlags().Duration("time-limit", session.DefaultTimeLimit, "Time allowed per question")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration for cmd. Flags override QUIZBIT_*
// environment variables, which override the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}
