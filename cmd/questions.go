package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/questions"
	"github.com/abhisek/quizbit/internal/session"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the question set",
	Long: `Print every question of the configured set together with its options.

Correct options are marked with '*'. With --validate only the validation
result is printed and the command fails when the set is invalid.`,
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().Bool("validate", false, "Only validate the question set")
}

func runQuestions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	source := cfg.QuestionsPath
	if source == "" {
		source = "built-in set"
	}

	qs, err := questions.Load(cfg.QuestionsPath)
	if err != nil {
		return fmt.Errorf("%s: invalid question set: %w", source, err)
	}

	out := cmd.OutOrStdout()
	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		fmt.Fprintf(out, "%s: %d questions OK\n", source, len(qs))
		return nil
	}

	fmt.Fprintf(out, "Question set: %s (%d questions, %s per question)\n\n", source, len(qs), cfg.TimeLimit)
	for i, q := range qs {
		printQuestion(out, i, q)
	}
	return nil
}

func printQuestion(w io.Writer, i int, q session.Question) {
	fmt.Fprintf(w, "%d. %s", i+1, q.Text)
	if q.AnswerCount() > 1 {
		fmt.Fprintf(w, "  [choose %d]", q.AnswerCount())
	}
	fmt.Fprintln(w)

	for j, opt := range q.Options {
		mark := " "
		if q.IsAnswer(j) {
			mark = "*"
		}
		fmt.Fprintf(w, "   %s %d) %s\n", mark, j+1, opt)
	}
	if q.Description != "" {
		fmt.Fprintf(w, "     %s\n", strings.ReplaceAll(q.Description, "\n", "\n     "))
	}
	fmt.Fprintln(w)
}
