package models

// VideoMIMEType is the media type declared for every uploaded video.
const VideoMIMEType = "video/mp4"

// VideoSamplingFPS is the frame sampling hint sent alongside the video bytes.
const VideoSamplingFPS = 10.0

// VideoAsset is a video file loaded fully into memory for a single request
type VideoAsset struct {
	Path     string
	Data     []byte
	MIMEType string
}

// Blob is inline binary content
type Blob struct {
	Data     []byte
	MIMEType string
}

// VideoMetadata carries hints for how the model should sample a video part
type VideoMetadata struct {
	FPS float64
}

// Part is one piece of a request: either text or inline binary data
type Part struct {
	Text          string
	InlineData    *Blob
	VideoMetadata *VideoMetadata
}

// IsVideo reports whether the part carries inline video data
func (p Part) IsVideo() bool {
	return p.InlineData != nil && p.InlineData.MIMEType == VideoMIMEType
}

// IsText reports whether the part is a text part
func (p Part) IsText() bool {
	return p.InlineData == nil
}

// InferenceRequest is what gets sent to the remote model
type InferenceRequest struct {
	Model string
	Parts []Part
}

// NewVideoRequest builds a request with exactly one video part and one text part.
func NewVideoRequest(model string, video VideoAsset, prompt string) *InferenceRequest {
	return &InferenceRequest{
		Model: model,
		Parts: []Part{
			{
				InlineData:    &Blob{Data: video.Data, MIMEType: video.MIMEType},
				VideoMetadata: &VideoMetadata{FPS: VideoSamplingFPS},
			},
			{Text: prompt},
		},
	}
}

func (r *InferenceRequest) VideoParts() []Part {
	var parts []Part
	for _, p := range r.Parts {
		if p.IsVideo() {
			parts = append(parts, p)
		}
	}
	return parts
}

func (r *InferenceRequest) TextParts() []Part {
	var parts []Part
	for _, p := range r.Parts {
		if p.IsText() {
			parts = append(parts, p)
		}
	}
	return parts
}

// InferenceResponse is the opaque text returned by the model
type InferenceResponse struct {
	Text string
}

// Result is what a pending request resolves to
type Result struct {
	Text string
	Err  error
}
