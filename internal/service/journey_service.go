package service

import (
	"context"
	"fmt"
	"log"

	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/internal/store"
	"github.com/journeycircle/api/internal/workflow"
)

// JourneyService handles service areas, journey circles and asset linkage
type JourneyService struct {
	db       *store.Store
	sessions *workflow.Store
}

func NewJourneyService(db *store.Store, sessions *workflow.Store) *JourneyService {
	return &JourneyService{
		db:       db,
		sessions: sessions,
	}
}

// CreateServiceArea creates a service area together with its journey circle.
// The circle is 1:1 with the area; the storage layer enforces uniqueness so
// concurrent creates cannot produce duplicates.
func (s *JourneyService) CreateServiceArea(ctx context.Context, req *model.CreateServiceAreaRequest) (*model.CreateServiceAreaResponse, error) {
	area, err := s.db.ServiceAreas.Create(ctx, req.ClientID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create service area: %w", err)
	}

	circle, _, err := s.db.Circles.EnsureForServiceArea(ctx, area.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create journey circle: %w", err)
	}

	return &model.CreateServiceAreaResponse{
		ServiceArea:   area,
		JourneyCircle: circle,
	}, nil
}

// GetServiceArea returns one service area
func (s *JourneyService) GetServiceArea(ctx context.Context, id int64) (*model.ServiceArea, error) {
	return s.db.ServiceAreas.Get(ctx, id)
}

// ListServiceAreas returns all service areas for a client
func (s *JourneyService) ListServiceAreas(ctx context.Context, clientID int64) ([]model.ServiceArea, error) {
	return s.db.ServiceAreas.List(ctx, clientID)
}

// EnsureCircle returns the journey circle for a service area, creating it if
// absent. The bool reports whether it was created by this call.
func (s *JourneyService) EnsureCircle(ctx context.Context, serviceAreaID int64) (*model.JourneyCircle, bool, error) {
	return s.db.Circles.EnsureForServiceArea(ctx, serviceAreaID)
}

// SaveSelectedProblems persists the selected problem titles under a circle
func (s *JourneyService) SaveSelectedProblems(ctx context.Context, circleID int64, problems []model.SelectedProblem) error {
	return s.db.Problems.SaveSelected(ctx, circleID, problems)
}

// ListProblems returns the stored problems for a circle
func (s *JourneyService) ListProblems(ctx context.Context, circleID int64) ([]model.Problem, error) {
	return s.db.Problems.List(ctx, circleID)
}

// GetAsset returns one journey asset row
func (s *JourneyService) GetAsset(ctx context.Context, id int64) (*model.Asset, error) {
	return s.db.Assets.Get(ctx, id)
}

// ListAssets returns the journey assets attached to a problem or solution
func (s *JourneyService) ListAssets(ctx context.Context, linkedType model.LinkedToType, linkedID int64) ([]model.Asset, error) {
	return s.db.Assets.ListByLinked(ctx, linkedType, linkedID)
}

// SyncAssetURLs records published URLs for a problem. The session is the
// source of truth and is updated first; pushing the URL onto approved asset
// rows is best-effort and a row failure never fails the request.
func (s *JourneyService) SyncAssetURLs(ctx context.Context, sessionID string, problemID int64, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	_, err := s.sessions.Update(ctx, sessionID, "publishedUrls", func(session *model.WorkflowSession) error {
		return workflow.SetPublishedURLs(session, problemID, urls)
	})
	if err != nil {
		return err
	}

	assets, err := s.db.Assets.ListByLinked(ctx, model.LinkedToProblem, problemID)
	if err != nil {
		log.Printf("Failed to list assets for problem %d: %v", problemID, err)
		return nil
	}
	for _, asset := range assets {
		if asset.Status != model.AssetStatusApproved && asset.Status != model.AssetStatusPublished {
			continue
		}
		if err := s.db.Assets.SetPublishedURL(ctx, asset.ID, urls[0]); err != nil {
			log.Printf("Failed to set published URL on asset %d: %v", asset.ID, err)
		}
	}
	return nil
}
