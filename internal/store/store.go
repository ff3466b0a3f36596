package store

import (
	"context"
	"errors"

	"github.com/journeycircle/api/internal/model"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when an asset status would move backward.
// Approval is one-way: draft/outline -> approved -> published.
var ErrInvalidTransition = errors.New("invalid status transition")

// ServiceAreaRepo persists service areas
type ServiceAreaRepo interface {
	Create(ctx context.Context, clientID int64, name string) (*model.ServiceArea, error)
	Get(ctx context.Context, id int64) (*model.ServiceArea, error)
	List(ctx context.Context, clientID int64) ([]model.ServiceArea, error)
}

// CircleRepo persists journey circles. One circle per service area; the
// uniqueness constraint lives in the storage layer so a check-then-create
// race between two tabs cannot produce duplicates.
type CircleRepo interface {
	// EnsureForServiceArea returns the circle for a service area, creating
	// it if absent. The second return reports whether it was created.
	EnsureForServiceArea(ctx context.Context, serviceAreaID int64) (*model.JourneyCircle, bool, error)
	Get(ctx context.Context, id int64) (*model.JourneyCircle, error)
}

// ProblemRepo persists the selected problem titles for a circle
type ProblemRepo interface {
	SaveSelected(ctx context.Context, circleID int64, problems []model.SelectedProblem) error
	List(ctx context.Context, circleID int64) ([]model.Problem, error)
}

// AssetRepo persists journey_assets rows. One row per (linked item, format),
// created on first successful outline generation; revisions mutate the row.
type AssetRepo interface {
	// CreateIfAbsent inserts the row or returns the existing one for the
	// same (circle, linked_to_type, linked_to_id, asset_type).
	CreateIfAbsent(ctx context.Context, asset *model.Asset) (*model.Asset, error)
	Get(ctx context.Context, id int64) (*model.Asset, error)
	UpdateOutline(ctx context.Context, id int64, outline, title string) error
	UpdateContent(ctx context.Context, id int64, content string) error
	// Approve moves draft/outline -> approved. Moving backward, or
	// approving a published asset, fails with ErrInvalidTransition.
	Approve(ctx context.Context, id int64) (*model.Asset, error)
	// SetPublishedURL records the published URL and moves the asset to
	// published.
	SetPublishedURL(ctx context.Context, id int64, url string) error
	ListByLinked(ctx context.Context, linkedType model.LinkedToType, linkedID int64) ([]model.Asset, error)
}

// Store bundles the relational repositories
type Store struct {
	ServiceAreas ServiceAreaRepo
	Circles      CircleRepo
	Problems     ProblemRepo
	Assets       AssetRepo
}
