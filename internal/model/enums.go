package model

// Wizard steps
const (
	StepServiceArea    = 1
	StepExistingAssets = 2
	StepBrainContent   = 3
	StepIndustries     = 4
	StepProblemTitles  = 5
	StepSelectProblems = 6
	StepSolutions      = 7
	StepOffers         = 8
	StepAssetCreator   = 9
	StepLinkAssets     = 10
)

// MaxSelectedProblems is the hard cap on selected problem titles (step 6)
const MaxSelectedProblems = 5

// GenerationStatus tracks the lifecycle of a generated artifact
type GenerationStatus string

const (
	GenerationStatusNone    GenerationStatus = "none"
	GenerationStatusLoading GenerationStatus = "loading"
	GenerationStatusSuccess GenerationStatus = "success"
	GenerationStatusError   GenerationStatus = "error"
	GenerationStatusManual  GenerationStatus = "manual"
)

// ArtifactKind identifies the type of AI-generated artifact
type ArtifactKind string

const (
	ArtifactProblemTitles  ArtifactKind = "problem_titles"
	ArtifactSolutionTitles ArtifactKind = "solution_titles"
	ArtifactOutline        ArtifactKind = "outline"
	ArtifactContent        ArtifactKind = "content"
	ArtifactSlideImage     ArtifactKind = "slide_image"
)

// AssetType is the content format of a journey asset
type AssetType string

const (
	AssetTypeBlogPost    AssetType = "blog_post"
	AssetTypeSlideDeck   AssetType = "slide_deck"
	AssetTypeInfographic AssetType = "infographic"
	AssetTypeEmailSeries AssetType = "email_series"
)

var ValidAssetTypes = []AssetType{
	AssetTypeBlogPost, AssetTypeSlideDeck, AssetTypeInfographic, AssetTypeEmailSeries,
}

// AssetStatus is the server-side status of a journey asset row.
// Transitions are one-way: draft/outline -> approved -> published.
type AssetStatus string

const (
	AssetStatusDraft     AssetStatus = "draft"
	AssetStatusOutline   AssetStatus = "outline"
	AssetStatusApproved  AssetStatus = "approved"
	AssetStatusPublished AssetStatus = "published"
)

// LinkedToType identifies what a journey asset is attached to
type LinkedToType string

const (
	LinkedToProblem  LinkedToType = "problem"
	LinkedToSolution LinkedToType = "solution"
)

// UploadedAssetType distinguishes uploaded files from inline HTML snippets
type UploadedAssetType string

const (
	UploadedAssetFile UploadedAssetType = "file"
	UploadedAssetHTML UploadedAssetType = "html_content"
)

// JobStatus tracks background slide-deck jobs
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// ImageQuality for slide image generation
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHigh     ImageQuality = "high"
)
