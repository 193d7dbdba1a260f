package gemini

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genai"

	"github.com/bdougie/videoanalyzer/internal/models"
)

// ErrMissingAPIKey is returned when no credential was supplied. There is no
// built-in fallback key.
var ErrMissingAPIKey = errors.New("gemini api key is not set")

// Options configures the Gemini client
type Options struct {
	APIKey  string
	BaseURL string
	Logger  *slog.Logger
}

// Client sends inference requests to the Gemini API
type Client struct {
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// NewClient validates the options and returns a client. No network traffic
// happens until Generate is called.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: opts.BaseURL,
		logger:  logger,
	}, nil
}

// Generate performs one blocking GenerateContent call. Every call gets its own
// SDK client so concurrent requests share nothing. Errors from the API are
// returned as-is.
func (c *Client) Generate(ctx context.Context, req *models.InferenceRequest) (*models.InferenceResponse, error) {
	client, err := genai.NewClient(ctx, c.clientConfig())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending generate request", "model", req.Model, "parts", len(req.Parts))
	resp, err := client.Models.GenerateContent(ctx, req.Model, toContents(req), nil)
	if err != nil {
		return nil, err
	}

	return &models.InferenceResponse{Text: resp.Text()}, nil
}

func (c *Client) clientConfig() *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	return cc
}

// toContents maps a request onto a single user turn, part for part
func toContents(req *models.InferenceRequest) []*genai.Content {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, toPart(p))
	}
	return []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
}

func toPart(p models.Part) *genai.Part {
	if p.InlineData == nil {
		return &genai.Part{Text: p.Text}
	}

	part := &genai.Part{
		InlineData: &genai.Blob{Data: p.InlineData.Data, MIMEType: p.InlineData.MIMEType},
	}
	if p.VideoMetadata != nil {
		fps := p.VideoMetadata.FPS
		part.VideoMetadata = &genai.VideoMetadata{FPS: &fps}
	}
	return part
}
