package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/journeycircle/api/internal/model"
)

// NewMemoryStore returns map-backed repositories. Used when DATABASE_URL is
// not configured (development) and by tests.
func NewMemoryStore() *Store {
	return &Store{
		ServiceAreas: &memServiceAreaRepo{areas: map[int64]model.ServiceArea{}},
		Circles:      &memCircleRepo{byArea: map[int64]model.JourneyCircle{}},
		Problems:     &memProblemRepo{problems: map[int64]model.Problem{}},
		Assets:       &memAssetRepo{assets: map[int64]model.Asset{}},
	}
}

type memServiceAreaRepo struct {
	mu     sync.Mutex
	nextID int64
	areas  map[int64]model.ServiceArea
}

func (r *memServiceAreaRepo) Create(ctx context.Context, clientID int64, name string) (*model.ServiceArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	area := model.ServiceArea{ID: r.nextID, ClientID: clientID, Name: name, CreatedAt: time.Now()}
	r.areas[area.ID] = area
	return &area, nil
}

func (r *memServiceAreaRepo) Get(ctx context.Context, id int64) (*model.ServiceArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	area, ok := r.areas[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &area, nil
}

func (r *memServiceAreaRepo) List(ctx context.Context, clientID int64) ([]model.ServiceArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	areas := []model.ServiceArea{}
	for _, a := range r.areas {
		if a.ClientID == clientID {
			areas = append(areas, a)
		}
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	return areas, nil
}

type memCircleRepo struct {
	mu     sync.Mutex
	nextID int64
	byArea map[int64]model.JourneyCircle
}

func (r *memCircleRepo) EnsureForServiceArea(ctx context.Context, serviceAreaID int64) (*model.JourneyCircle, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if circle, ok := r.byArea[serviceAreaID]; ok {
		return &circle, false, nil
	}
	r.nextID++
	circle := model.JourneyCircle{ID: r.nextID, ServiceAreaID: serviceAreaID, CreatedAt: time.Now()}
	r.byArea[serviceAreaID] = circle
	return &circle, true, nil
}

func (r *memCircleRepo) Get(ctx context.Context, id int64) (*model.JourneyCircle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byArea {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

type memProblemRepo struct {
	mu       sync.Mutex
	problems map[int64]model.Problem
}

func (r *memProblemRepo) SaveSelected(ctx context.Context, circleID int64, problems []model.SelectedProblem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range problems {
		existing, ok := r.problems[p.ID]
		if ok {
			existing.Title = p.Title
			r.problems[p.ID] = existing
			continue
		}
		r.problems[p.ID] = model.Problem{
			ID:              p.ID,
			JourneyCircleID: circleID,
			Title:           p.Title,
			CreatedAt:       time.Now(),
		}
	}
	return nil
}

func (r *memProblemRepo) List(ctx context.Context, circleID int64) ([]model.Problem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	problems := []model.Problem{}
	for _, p := range r.problems {
		if p.JourneyCircleID == circleID {
			problems = append(problems, p)
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].ID < problems[j].ID })
	return problems, nil
}

type memAssetRepo struct {
	mu     sync.Mutex
	nextID int64
	assets map[int64]model.Asset
}

func (r *memAssetRepo) CreateIfAbsent(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.JourneyCircleID == asset.JourneyCircleID &&
			a.LinkedToType == asset.LinkedToType &&
			a.LinkedToID == asset.LinkedToID &&
			a.AssetType == asset.AssetType {
			return &a, nil
		}
	}
	r.nextID++
	now := time.Now()
	row := model.Asset{
		ID:              r.nextID,
		JourneyCircleID: asset.JourneyCircleID,
		LinkedToType:    asset.LinkedToType,
		LinkedToID:      asset.LinkedToID,
		AssetType:       asset.AssetType,
		Title:           asset.Title,
		Outline:         asset.Outline,
		Status:          model.AssetStatusOutline,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.assets[row.ID] = row
	return &row, nil
}

func (r *memAssetRepo) Get(ctx context.Context, id int64) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &asset, nil
}

func (r *memAssetRepo) UpdateOutline(ctx context.Context, id int64, outline, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	asset.Outline = outline
	if title != "" {
		asset.Title = title
	}
	asset.UpdatedAt = time.Now()
	r.assets[id] = asset
	return nil
}

func (r *memAssetRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	if asset.Status != model.AssetStatusOutline && asset.Status != model.AssetStatusDraft {
		return ErrNotFound
	}
	asset.Content = content
	asset.Status = model.AssetStatusDraft
	asset.UpdatedAt = time.Now()
	r.assets[id] = asset
	return nil
}

func (r *memAssetRepo) Approve(ctx context.Context, id int64) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if asset.Status != model.AssetStatusDraft && asset.Status != model.AssetStatusOutline {
		return nil, fmt.Errorf("%w: asset %d is %s", ErrInvalidTransition, id, asset.Status)
	}
	asset.Status = model.AssetStatusApproved
	asset.UpdatedAt = time.Now()
	r.assets[id] = asset
	return &asset, nil
}

func (r *memAssetRepo) SetPublishedURL(ctx context.Context, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	if asset.Status != model.AssetStatusApproved && asset.Status != model.AssetStatusPublished {
		return ErrNotFound
	}
	asset.PublishedURL = url
	asset.Status = model.AssetStatusPublished
	asset.UpdatedAt = time.Now()
	r.assets[id] = asset
	return nil
}

func (r *memAssetRepo) ListByLinked(ctx context.Context, linkedType model.LinkedToType, linkedID int64) ([]model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assets := []model.Asset{}
	for _, a := range r.assets {
		if a.LinkedToType == linkedType && a.LinkedToID == linkedID {
			assets = append(assets, a)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}
