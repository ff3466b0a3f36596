package service

import (
	"context"
	"errors"
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func startJob(t *testing.T, s *SlideService) string {
	t.Helper()
	resp, err := s.Start(context.Background(), &model.DeckStartRequest{
		SessionID: "s1",
		AssetID:   1,
		Slides:    []model.SlideSpec{{Title: "Intro"}, {Title: "Numbers"}},
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if resp.Status != model.JobStatusQueued {
		t.Fatalf("expected queued, got %s", resp.Status)
	}
	return resp.JobID
}

func TestSlideService_Lifecycle(t *testing.T) {
	s := NewSlideService(nil, nil)
	ctx := context.Background()
	jobID := startJob(t, s)

	if err := s.MarkRunning(ctx, jobID); err != nil {
		t.Fatalf("mark running failed: %v", err)
	}
	if err := s.UpdateProgress(ctx, jobID, 50, "Rendering slide 2 of 2"); err != nil {
		t.Fatalf("progress failed: %v", err)
	}

	status, err := s.GetStatus(ctx, jobID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Status != model.JobStatusRunning || status.Progress != 50 {
		t.Errorf("unexpected status: %+v", status)
	}
	if status.StartedAt == nil {
		t.Error("expected startedAt after running")
	}

	// Result before completion is an error
	if _, err := s.GetResult(ctx, jobID); err == nil {
		t.Error("result must not be readable before completion")
	}

	result := &model.DeckResultResponse{
		JobID:   jobID,
		AssetID: 1,
		Slides:  []model.SlideResult{{Index: 0, Title: "Intro", ImageURL: "https://cdn.example.com/0.png"}},
	}
	if err := s.CompleteJob(ctx, jobID, result); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	got, err := s.GetResult(ctx, jobID)
	if err != nil {
		t.Fatalf("result failed: %v", err)
	}
	if len(got.Slides) != 1 || got.Slides[0].ImageURL != "https://cdn.example.com/0.png" {
		t.Errorf("result lost in persistence: %+v", got)
	}

	status, _ = s.GetStatus(ctx, jobID)
	if status.Status != model.JobStatusSucceeded || status.Progress != 100 {
		t.Errorf("unexpected final status: %+v", status)
	}
}

func TestSlideService_Cancel(t *testing.T) {
	s := NewSlideService(nil, nil)
	ctx := context.Background()
	jobID := startJob(t, s)

	resp, err := s.Cancel(ctx, jobID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !resp.Success || resp.Status != model.JobStatusCanceled {
		t.Errorf("unexpected cancel response: %+v", resp)
	}

	// Terminal jobs cannot be cancelled again
	resp, err = s.Cancel(ctx, jobID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if resp.Success {
		t.Error("second cancel must be a no-op")
	}
}

func TestSlideService_Fail(t *testing.T) {
	s := NewSlideService(nil, nil)
	ctx := context.Background()
	jobID := startJob(t, s)

	if err := s.FailJob(ctx, jobID, "provider unavailable"); err != nil {
		t.Fatalf("fail failed: %v", err)
	}

	status, err := s.GetStatus(ctx, jobID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Status != model.JobStatusFailed {
		t.Errorf("expected failed, got %s", status.Status)
	}
	if status.Error == nil || *status.Error != "provider unavailable" {
		t.Errorf("expected error message, got %v", status.Error)
	}
}

func TestSlideService_UnknownJob(t *testing.T) {
	s := NewSlideService(nil, nil)

	if _, err := s.GetStatus(context.Background(), "nope"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := s.Cancel(context.Background(), "nope"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestSlideService_GetJobReturnsCopy(t *testing.T) {
	s := NewSlideService(nil, nil)
	ctx := context.Background()
	jobID := startJob(t, s)

	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	job.Status = model.JobStatusFailed

	fresh, _ := s.GetJob(ctx, jobID)
	if fresh.Status != model.JobStatusQueued {
		t.Error("mutating a returned job must not affect the stored record")
	}
}
