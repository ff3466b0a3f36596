package model

// WebSocket event types. This is the closed set of notifications the wizard
// UI can receive; payload shapes are fixed per type.
const (
	WSEventStateChanged = "state_changed"
	WSEventGeneration   = "generation"
	WSEventProgress     = "progress"
	WSEventComplete     = "complete"
	WSEventError        = "error"
	WSEventPing         = "ping"
	WSEventPong         = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSStateChangedMessage notifies subscribers that a session field changed
type WSStateChangedMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Field     string `json:"field"`
}

// WSGenerationMessage notifies subscribers of an artifact lifecycle transition
type WSGenerationMessage struct {
	Type      string           `json:"type"`
	SessionID string           `json:"sessionId"`
	Artifact  ArtifactID       `json:"artifact"`
	Status    GenerationStatus `json:"status"`
}

// WSProgressMessage represents a slide-deck job progress update
type WSProgressMessage struct {
	Type        string    `json:"type"`
	JobID       string    `json:"jobId"`
	Progress    int       `json:"progress"`
	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"currentStep,omitempty"`
}

// WSCompleteMessage represents job completion
type WSCompleteMessage struct {
	Type   string      `json:"type"`
	JobID  string      `json:"jobId"`
	Result interface{} `json:"result"`
}

// WSErrorMessage represents an error
type WSErrorMessage struct {
	Type  string  `json:"type"`
	JobID string  `json:"jobId"`
	Error WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
