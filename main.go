package main

import (
	"os"

	"github.com/abhisek/quizbit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
