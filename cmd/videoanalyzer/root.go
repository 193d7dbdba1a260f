package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bdougie/videoanalyzer/internal/analyzer"
	"github.com/bdougie/videoanalyzer/internal/config"
	"github.com/bdougie/videoanalyzer/internal/logging"
	"github.com/bdougie/videoanalyzer/internal/worker"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "videoanalyzer",
		Short:         "Ask a multimodal model about a local video",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pflags := rootCmd.PersistentFlags()
	pflags.String("config-file", "", "Path to a YAML config file")
	pflags.String("env-file", "", "Path to a .env file")
	pflags.String("log-level", "info", "Log level: debug, info, warn or error")

	_ = v.BindPFlag("config_file", pflags.Lookup("config-file"))
	_ = v.BindPFlag("env_file", pflags.Lookup("env-file"))
	_ = v.BindPFlag("log_level", pflags.Lookup("log-level"))

	rootCmd.AddCommand(newAnalyzeCmd(v, stdout, stderr))
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

func newAnalyzeCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [video]",
		Short: "Send a video to the model and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath, err := cmd.Flags().GetString("video")
			if err != nil {
				return err
			}
			if videoPath == "" && len(args) == 1 {
				videoPath = args[0]
			}
			if videoPath == "" {
				return config.ErrMissingVideoPath
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(stderr, cfg.LogLevel, cfg.Environment)

			client, err := analyzer.NewClient(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize inference client: %w", err)
			}

			dispatcher := worker.NewDispatcher(cfg.Workers, logger)
			defer dispatcher.Close()

			requester := analyzer.NewRequester(client, dispatcher, analyzer.Options{
				Model:  cfg.Model,
				Prompt: cfg.Prompt,
				Logger: logger,
			})

			text, err := requester.ProcessVideo(cmd.Context(), videoPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, text)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("video", "", "Path to the mp4 file to analyze")
	flags.String("model", config.DefaultModel, "Model to send the video to")
	flags.String("prompt", "", "Instruction sent alongside the video")
	flags.String("prompt-file", "", "File holding the instruction; overrides --prompt")
	flags.String("base-url", "", "Override the API endpoint")
	flags.Int("workers", 4, "Size of the worker pool that runs model calls")

	_ = v.BindPFlag("model", flags.Lookup("model"))
	_ = v.BindPFlag("prompt", flags.Lookup("prompt"))
	_ = v.BindPFlag("prompt_file", flags.Lookup("prompt-file"))
	_ = v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("workers", flags.Lookup("workers"))

	return cmd
}
