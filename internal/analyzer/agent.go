package analyzer

import (
	"log/slog"

	"github.com/bdougie/videoanalyzer/internal/config"
	"github.com/bdougie/videoanalyzer/internal/inference/gemini"
)

// NewClient initializes the Gemini client described by cfg
func NewClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	client, err := gemini.NewClient(gemini.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
