package main

import (
	"os"

	"github.com/bdougie/videoanalyzer/internal/logging"
)

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		logger := logging.NewLogger(os.Stderr, "info", os.Getenv("VIDEOANALYZER_ENVIRONMENT"))
		logger.Error("Error processing video", "error", err)
		os.Exit(1)
	}
}
