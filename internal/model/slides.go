package model

import "time"

// Job represents a background slide-deck assembly job
type Job struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"sessionId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Payload     []byte     `json:"payload,omitempty"`
	Result      []byte     `json:"result,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// SlideSpec describes one slide to render
type SlideSpec struct {
	Title         string       `json:"title" validate:"required,min=1"`
	Section       string       `json:"section"`
	KeyPoints     []string     `json:"keyPoints"`
	DataPoints    []string     `json:"dataPoints"`
	VisualElement string       `json:"visualElement"`
	Quality       ImageQuality `json:"quality" validate:"omitempty,oneof=standard high"`
}

// DeckStartRequest queues assembly of a full slide deck for an asset
type DeckStartRequest struct {
	SessionID string      `json:"sessionId" validate:"required,min=1"`
	AssetID   int64       `json:"assetId" validate:"required"`
	Slides    []SlideSpec `json:"slides" validate:"required,min=1,max=30,dive"`
}

// DeckJobPayload is the queued task body
type DeckJobPayload struct {
	SessionID string      `json:"sessionId"`
	AssetID   int64       `json:"assetId"`
	Slides    []SlideSpec `json:"slides"`
}

// DeckStartResponse acknowledges the queued job
type DeckStartResponse struct {
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeckStatusResponse reports job progress
type DeckStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// SlideResult is one rendered slide
type SlideResult struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	MimeType string `json:"mimeType"`
}

// DeckResultResponse is the completed deck
type DeckResultResponse struct {
	JobID     string        `json:"jobId"`
	AssetID   int64         `json:"assetId"`
	Slides    []SlideResult `json:"slides"`
	CreatedAt time.Time     `json:"createdAt"`
}

// DeckCancelResponse acknowledges cancellation
type DeckCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
