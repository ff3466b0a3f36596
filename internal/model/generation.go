package model

// CheckStatusResponse reports whether the AI provider is usable
type CheckStatusResponse struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model,omitempty"`
	Message    string `json:"message"`
}

// ProblemTitlesRequest asks for a batch of problem titles for a service area
type ProblemTitlesRequest struct {
	ServiceAreaID   int64    `json:"service_area_id" validate:"required"`
	ServiceAreaName string   `json:"service_area_name" validate:"required,min=1"`
	Industries      []string `json:"industries" validate:"omitempty,dive,min=1"`
	BrainContent    []string `json:"brain_content"`
	ForceRefresh    bool     `json:"force_refresh"`
}

// ProblemTitlesResponse carries the generated batch (typically 8-10 titles)
type ProblemTitlesResponse struct {
	Success bool     `json:"success"`
	Titles  []string `json:"titles"`
	Count   int      `json:"count"`
	Cached  bool     `json:"cached"`
	Error   string   `json:"error,omitempty"`
}

// SolutionTitlesRequest asks for solution titles for one selected problem
type SolutionTitlesRequest struct {
	ProblemID       int64    `json:"problem_id" validate:"required"`
	ProblemTitle    string   `json:"problem_title" validate:"required,min=1"`
	ServiceAreaName string   `json:"service_area_name" validate:"required,min=1"`
	Industries      []string `json:"industries"`
	BrainContent    []string `json:"brain_content"`
	ForceRefresh    bool     `json:"force_refresh"`
}

// SolutionTitlesResponse carries solution titles for one problem
type SolutionTitlesResponse struct {
	Success bool     `json:"success"`
	Titles  []string `json:"titles"`
	Cached  bool     `json:"cached"`
	Error   string   `json:"error,omitempty"`
}

// AllSolutionsRequest generates solutions for every selected problem, sequentially
type AllSolutionsRequest struct {
	ServiceAreaName string   `json:"service_area_name" validate:"required,min=1"`
	Industries      []string `json:"industries"`
	BrainContent    []string `json:"brain_content"`
	ForceRefresh    bool     `json:"force_refresh"`
}

// ProblemOutcome is the per-problem result of a generate-all run
type ProblemOutcome struct {
	ProblemID int64    `json:"problemId"`
	Success   bool     `json:"success"`
	Titles    []string `json:"titles,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// AllSolutionsResponse aggregates per-problem outcomes
type AllSolutionsResponse struct {
	AllSuccess bool             `json:"allSuccess"`
	Outcomes   []ProblemOutcome `json:"outcomes"`
}

// OutlineRequest asks for a long-form content outline for a problem or solution
type OutlineRequest struct {
	JourneyCircleID int64        `json:"journey_circle_id" validate:"required"`
	LinkedToType    LinkedToType `json:"linked_to_type" validate:"required,oneof=problem solution"`
	LinkedToID      int64        `json:"linked_to_id" validate:"required"`
	AssetType       AssetType    `json:"asset_type" validate:"required,oneof=blog_post slide_deck infographic email_series"`
	BrainContent    []string     `json:"brain_content"`
	Industries      []string     `json:"industries"`
	ServiceAreaName string       `json:"service_area_name" validate:"required,min=1"`
	ProblemTitle    string       `json:"problem_title" validate:"required,min=1"`
	SolutionTitle   string       `json:"solution_title"`
	ForceRefresh    bool         `json:"force_refresh"`
}

// OutlineResponse returns the outline plus the journey asset row it created
type OutlineResponse struct {
	Success bool   `json:"success"`
	Outline string `json:"outline"`
	AssetID int64  `json:"asset_id"`
	Title   string `json:"title"`
	Cached  bool   `json:"cached"`
	Error   string `json:"error,omitempty"`
}

// ReviseOutlineRequest revises an existing outline with operator feedback
type ReviseOutlineRequest struct {
	AssetID        int64  `json:"asset_id" validate:"required"`
	CurrentOutline string `json:"current_outline" validate:"required,min=1"`
	Feedback       string `json:"feedback"`
}

// ReviseOutlineResponse returns the revised outline in place
type ReviseOutlineResponse struct {
	Success       bool   `json:"success"`
	Outline       string `json:"outline"`
	Title         string `json:"title,omitempty"`
	RevisionNotes string `json:"revision_notes,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ContentRequest expands an approved outline into full content
type ContentRequest struct {
	AssetID      int64  `json:"asset_id" validate:"required"`
	Outline      string `json:"outline" validate:"required,min=1"`
	ForceRefresh bool   `json:"force_refresh"`
}

// ContentResponse carries the generated content body
type ContentResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Cached  bool   `json:"cached"`
	Error   string `json:"error,omitempty"`
}

// ReviseContentRequest revises content with operator feedback
type ReviseContentRequest struct {
	AssetID        int64  `json:"asset_id" validate:"required"`
	CurrentContent string `json:"current_content" validate:"required,min=1"`
	Feedback       string `json:"feedback"`
}

// ReviseContentResponse returns the revised content in place
type ReviseContentResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// SlideImageRequest renders one slide/infographic image
type SlideImageRequest struct {
	SlideTitle    string       `json:"slide_title" validate:"required,min=1"`
	Section       string       `json:"section"`
	KeyPoints     []string     `json:"key_points"`
	DataPoints    []string     `json:"data_points"`
	VisualElement string       `json:"visual_element"`
	Quality       ImageQuality `json:"quality" validate:"omitempty,oneof=standard high"`
}

// SlideImageResponse carries the rendered image
type SlideImageResponse struct {
	Success     bool   `json:"success"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	ModelUsed   string `json:"model_used"`
	Error       string `json:"error,omitempty"`
}

// ManualModeRequest toggles manual mode for one artifact. With Enabled true,
// Titles/Text optionally carry operator-entered content.
type ManualModeRequest struct {
	ArtifactID ArtifactID `json:"artifact_id" validate:"required"`
	Enabled    bool       `json:"enabled"`
	Titles     []string   `json:"titles,omitempty"`
	Text       string     `json:"text,omitempty"`
}

// CancelRequest aborts the in-flight request for one artifact
type CancelRequest struct {
	ArtifactID ArtifactID `json:"artifact_id" validate:"required"`
}

// ApproveResponse acknowledges a draft -> approved transition
type ApproveResponse struct {
	Success       bool        `json:"success"`
	Status        AssetStatus `json:"status"`
	DownloadReady bool        `json:"downloadReady"`
}
