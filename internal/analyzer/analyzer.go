package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bdougie/videoanalyzer/internal/config"
	"github.com/bdougie/videoanalyzer/internal/models"
	"github.com/bdougie/videoanalyzer/internal/worker"
)

// Client is a blocking connection to a multimodal model
type Client interface {
	Generate(ctx context.Context, req *models.InferenceRequest) (*models.InferenceResponse, error)
}

type Requester struct {
	client     Client
	dispatcher *worker.Dispatcher
	model      string
	prompt     string
	logger     *slog.Logger
}

// Options holds the fixed parts of every request. An empty Model means
// config.DefaultModel.
type Options struct {
	Model  string
	Prompt string
	Logger *slog.Logger
}

func NewRequester(client Client, dispatcher *worker.Dispatcher, opts Options) *Requester {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	model := opts.Model
	if model == "" {
		model = config.DefaultModel
	}

	return &Requester{
		client:     client,
		dispatcher: dispatcher,
		model:      model,
		prompt:     opts.Prompt,
		logger:     logger,
	}
}

// ProcessVideo sends the video at videoPath to the model and waits for the
// response text.
func (r *Requester) ProcessVideo(ctx context.Context, videoPath string) (string, error) {
	result := <-r.ProcessVideoAsync(ctx, videoPath)
	return result.Text, result.Err
}

// ProcessVideoAsync reads the video, hands the model call to a worker and
// returns without waiting for it. The channel receives exactly one result.
// A read failure resolves the channel immediately and no call is made.
//
// The model call is detached from ctx cancellation: once dispatched it runs
// until the remote side answers or fails.
func (r *Requester) ProcessVideoAsync(ctx context.Context, videoPath string) <-chan models.Result {
	video, err := r.readVideo(videoPath)
	if err != nil {
		return resolved(models.Result{Err: err})
	}

	if r.prompt == "" {
		r.logger.Warn("instruction prompt is empty", "video", videoPath)
	}

	req := models.NewVideoRequest(r.model, video, r.prompt)
	callCtx := context.WithoutCancel(ctx)

	r.logger.Info("dispatching video analysis", "video", videoPath, "bytes", len(video.Data), "model", r.model)
	return r.dispatcher.Dispatch(func() (string, error) {
		resp, err := r.client.Generate(callCtx, req)
		if err != nil {
			return "", err
		}
		return resp.Text, nil
	})
}

func (r *Requester) readVideo(videoPath string) (models.VideoAsset, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return models.VideoAsset{}, fmt.Errorf("failed to read video file '%s': %w", videoPath, err)
	}

	// The declared type is always mp4; a mismatch is only worth a warning
	detected := mimetype.Detect(data)
	if !detected.Is(models.VideoMIMEType) {
		r.logger.Warn("video content does not look like mp4", "video", videoPath, "detected", detected.String())
	}

	return models.VideoAsset{
		Path:     videoPath,
		Data:     data,
		MIMEType: models.VideoMIMEType,
	}, nil
}

func resolved(result models.Result) <-chan models.Result {
	resultChan := make(chan models.Result, 1)
	resultChan <- result
	close(resultChan)
	return resultChan
}
