package model

import "time"

// ContentItem is a piece of brain content: reference material fed into every
// generation call.
type ContentItem struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	AddedAt time.Time `json:"addedAt"`
}

// UploadedAsset is a reference asset attached to the session. Exactly one of
// Value (file URL) or Content (inline HTML) is populated depending on Type.
type UploadedAsset struct {
	ID       string            `json:"id"`
	Type     UploadedAssetType `json:"type"`
	Name     string            `json:"name"`
	Size     int64             `json:"size,omitempty"`
	MimeType string            `json:"mimeType,omitempty"`
	Value    string            `json:"value,omitempty"`
	Content  string            `json:"content,omitempty"`
	AddedAt  time.Time         `json:"addedAt"`
}

// SelectedProblem is one of the (at most 5) problem titles chosen in step 6
type SelectedProblem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// FeedbackEntry records one revision request. The history is append-only; it
// is the session's audit trail of AI interactions.
type FeedbackEntry struct {
	ArtifactID ArtifactID `json:"artifactId"`
	Feedback   string     `json:"feedback"`
	Timestamp  time.Time  `json:"timestamp"`
}

// GenerationRecord is the lifecycle entity for one generated artifact.
// Destroyed only by regeneration overwrite or session reset.
type GenerationRecord struct {
	Status   GenerationStatus `json:"status"`
	Payload  []string         `json:"payload,omitempty"`
	Text     string           `json:"text,omitempty"`
	Error    string           `json:"error,omitempty"`
	Manual   bool             `json:"manual"`
	Approved bool             `json:"approved"`
	CachedAt *time.Time       `json:"cachedAt,omitempty"`

	// Seq increments on every new request so a superseded call can never
	// apply its outcome over a newer one. Persisted with the session so the
	// guard survives store round trips.
	Seq int64 `json:"seq"`
}

// WorkflowSession is the canonical wizard state for one session. The store
// rewrites the whole blob on every update (last write wins).
type WorkflowSession struct {
	ID                string                           `json:"id"`
	CurrentStep       int                              `json:"currentStep"`
	ClientID          *int64                           `json:"clientId,omitempty"`
	ServiceAreaID     *int64                           `json:"serviceAreaId,omitempty"`
	ServiceAreaName   string                           `json:"serviceAreaName,omitempty"`
	JourneyCircleID   *int64                           `json:"journeyCircleId,omitempty"`
	Industries        []string                         `json:"industries"`
	BrainContent      []ContentItem                    `json:"brainContent"`
	ExistingAssets    []UploadedAsset                  `json:"existingAssets"`
	SelectedProblems  []SelectedProblem                `json:"selectedProblems"`
	SelectedSolutions map[int64]string                 `json:"selectedSolutions"`
	Generations       map[ArtifactID]*GenerationRecord `json:"generations"`
	FeedbackHistory   []FeedbackEntry                  `json:"feedbackHistory"`
	PublishedURLs     map[int64]string                 `json:"publishedUrls"`
	UpdatedAt         time.Time                        `json:"updatedAt"`
}

// NewWorkflowSession creates an empty session positioned at step 1
func NewWorkflowSession(id string) *WorkflowSession {
	return &WorkflowSession{
		ID:                id,
		CurrentStep:       StepServiceArea,
		Industries:        []string{},
		BrainContent:      []ContentItem{},
		ExistingAssets:    []UploadedAsset{},
		SelectedProblems:  []SelectedProblem{},
		SelectedSolutions: map[int64]string{},
		Generations:       map[ArtifactID]*GenerationRecord{},
		FeedbackHistory:   []FeedbackEntry{},
		PublishedURLs:     map[int64]string{},
	}
}

// Record returns the generation record for an artifact, creating it on first use
func (s *WorkflowSession) Record(id ArtifactID) *GenerationRecord {
	if s.Generations == nil {
		s.Generations = map[ArtifactID]*GenerationRecord{}
	}
	rec, ok := s.Generations[id]
	if !ok {
		rec = &GenerationRecord{Status: GenerationStatusNone}
		s.Generations[id] = rec
	}
	return rec
}

// WorkflowUpdateRequest sets one top-level session field
type WorkflowUpdateRequest struct {
	Field string      `json:"field" validate:"required,oneof=currentStep clientId serviceAreaId serviceAreaName journeyCircleId industries brainContent selectedSolutions publishedUrls"`
	Value interface{} `json:"value"`
}

// SelectProblemsRequest replaces the selected problem set (step 6)
type SelectProblemsRequest struct {
	Problems []SelectedProblem `json:"problems" validate:"required,min=1,max=5,dive"`
}

// SelectSolutionRequest picks one solution title for a problem (step 7)
type SelectSolutionRequest struct {
	ProblemID int64  `json:"problemId" validate:"required"`
	Title     string `json:"title" validate:"required,min=1"`
}
