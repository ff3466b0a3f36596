package store

import (
	"context"
	"errors"
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func TestEnsureForServiceArea_Idempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, created, err := s.Circles.EnsureForServiceArea(ctx, 7)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if !created {
		t.Error("first call must create the circle")
	}

	second, created, err := s.Circles.EnsureForServiceArea(ctx, 7)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if created {
		t.Error("second call must reuse the circle")
	}
	if second.ID != first.ID {
		t.Errorf("expected circle %d, got %d", first.ID, second.ID)
	}
}

func TestCreateIfAbsent_OneRowPerLinkedItemAndFormat(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seed := &model.Asset{
		JourneyCircleID: 1,
		LinkedToType:    model.LinkedToProblem,
		LinkedToID:      3,
		AssetType:       model.AssetTypeBlogPost,
		Title:           "T",
		Outline:         "1. intro",
	}
	first, err := s.Assets.CreateIfAbsent(ctx, seed)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Status != model.AssetStatusOutline {
		t.Errorf("new rows start at outline, got %s", first.Status)
	}

	second, err := s.Assets.CreateIfAbsent(ctx, seed)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("same linked item and format must reuse the row, got %d and %d", first.ID, second.ID)
	}

	// A different format under the same linked item is a separate row
	other := *seed
	other.AssetType = model.AssetTypeSlideDeck
	third, err := s.Assets.CreateIfAbsent(ctx, &other)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if third.ID == first.ID {
		t.Error("different formats must not share a row")
	}
}

func TestApprove_OneWay(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	asset, err := s.Assets.CreateIfAbsent(ctx, &model.Asset{
		JourneyCircleID: 1,
		LinkedToType:    model.LinkedToProblem,
		LinkedToID:      1,
		AssetType:       model.AssetTypeBlogPost,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Assets.UpdateContent(ctx, asset.ID, "body"); err != nil {
		t.Fatalf("content failed: %v", err)
	}

	approved, err := s.Assets.Approve(ctx, asset.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.AssetStatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}

	if _, err := s.Assets.Approve(ctx, asset.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Content is frozen once approved
	if err := s.Assets.UpdateContent(ctx, asset.ID, "rewrite"); err == nil {
		t.Error("approved assets must reject content updates")
	}
}

func TestSetPublishedURL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	asset, _ := s.Assets.CreateIfAbsent(ctx, &model.Asset{
		JourneyCircleID: 1,
		LinkedToType:    model.LinkedToProblem,
		LinkedToID:      1,
		AssetType:       model.AssetTypeBlogPost,
	})

	// Publishing requires approval first
	if err := s.Assets.SetPublishedURL(ctx, asset.ID, "https://example.com/x"); err == nil {
		t.Error("unapproved assets must reject a published URL")
	}

	if _, err := s.Assets.Approve(ctx, asset.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := s.Assets.SetPublishedURL(ctx, asset.ID, "https://example.com/x"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	got, err := s.Assets.Get(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != model.AssetStatusPublished || got.PublishedURL != "https://example.com/x" {
		t.Errorf("unexpected asset: %+v", got)
	}
}

func TestListByLinked(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, at := range []model.AssetType{model.AssetTypeBlogPost, model.AssetTypeSlideDeck} {
		if _, err := s.Assets.CreateIfAbsent(ctx, &model.Asset{
			JourneyCircleID: 1,
			LinkedToType:    model.LinkedToProblem,
			LinkedToID:      5,
			AssetType:       at,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := s.Assets.CreateIfAbsent(ctx, &model.Asset{
		JourneyCircleID: 1,
		LinkedToType:    model.LinkedToSolution,
		LinkedToID:      5,
		AssetType:       model.AssetTypeBlogPost,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	assets, err := s.Assets.ListByLinked(ctx, model.LinkedToProblem, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(assets) != 2 {
		t.Errorf("expected 2 assets for the problem, got %d", len(assets))
	}
}
