package worker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/journeycircle/api/internal/client"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/internal/service"
	"github.com/journeycircle/api/internal/websocket"
)

// SlideWorker renders slide decks: one image per slide, sequentially, with
// progress pushed to job subscribers after every slide.
type SlideWorker struct {
	slideService *service.SlideService
	controller   *generation.Controller
	storage      client.StorageClient
	hub          *websocket.Hub
}

func NewSlideWorker(slideService *service.SlideService, controller *generation.Controller, storage client.StorageClient, hub *websocket.Hub) *SlideWorker {
	return &SlideWorker{
		slideService: slideService,
		controller:   controller,
		storage:      storage,
		hub:          hub,
	}
}

// ProcessTask handles one slide-deck job
func (w *SlideWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Printf("Starting slide deck job: %s", jobID)

	var payload model.DeckJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal deck payload: %w", err)
	}

	if err := w.slideService.MarkRunning(ctx, jobID); err != nil {
		return err
	}

	total := len(payload.Slides)
	slides := make([]model.SlideResult, 0, total)

	for i, spec := range payload.Slides {
		if canceled, err := w.jobCanceled(ctx, jobID); err != nil || canceled {
			if canceled {
				log.Printf("Slide deck job %s canceled", jobID)
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			log.Printf("Slide deck job %s interrupted", jobID)
			return ctx.Err()
		default:
		}

		step := fmt.Sprintf("Rendering slide %d of %d: %s", i+1, total, spec.Title)
		progress := i * 100 / total
		if err := w.slideService.UpdateProgress(ctx, jobID, progress, step); err != nil {
			log.Printf("Failed to update progress: %v", err)
		}
		w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)

		img, err := w.controller.GenerateSlideImage(ctx, &model.SlideImageRequest{
			SlideTitle:    spec.Title,
			Section:       spec.Section,
			KeyPoints:     spec.KeyPoints,
			DataPoints:    spec.DataPoints,
			VisualElement: spec.VisualElement,
			Quality:       spec.Quality,
		})
		if err != nil {
			if client.IsCancelled(err) {
				return nil
			}
			w.failJob(ctx, jobID, fmt.Sprintf("Slide %d failed: %v", i+1, err))
			return err
		}
		if !img.Success {
			w.failJob(ctx, jobID, fmt.Sprintf("Slide %d failed: %s", i+1, img.Error))
			return fmt.Errorf("slide %d: %s", i+1, img.Error)
		}

		imageURL, err := w.storeImage(ctx, jobID, i, img)
		if err != nil {
			w.failJob(ctx, jobID, "Failed to store slide image")
			return err
		}

		slides = append(slides, model.SlideResult{
			Index:    i,
			Title:    spec.Title,
			ImageURL: imageURL,
			MimeType: img.MimeType,
		})
	}

	result := &model.DeckResultResponse{
		JobID:     jobID,
		AssetID:   payload.AssetID,
		Slides:    slides,
		CreatedAt: time.Now(),
	}
	if err := w.slideService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}
	w.hub.BroadcastComplete(jobID, result)

	log.Printf("Slide deck job %s completed (%d slides)", jobID, total)
	return nil
}

// storeImage uploads the rendered image, or falls back to a data URL when no
// object storage is configured.
func (w *SlideWorker) storeImage(ctx context.Context, jobID string, index int, img *model.SlideImageResponse) (string, error) {
	if w.storage == nil {
		return fmt.Sprintf("data:%s;base64,%s", img.MimeType, img.ImageBase64), nil
	}

	raw, err := base64.StdEncoding.DecodeString(img.ImageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode slide image: %w", err)
	}
	return w.storage.Upload(ctx, client.SlideImageKey(jobID, index), bytes.NewReader(raw), img.MimeType)
}

func (w *SlideWorker) jobCanceled(ctx context.Context, jobID string) (bool, error) {
	job, err := w.slideService.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return job.Status == model.JobStatusCanceled, nil
}

func (w *SlideWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.slideService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Printf("Failed to mark job as failed: %v", err)
	}
	w.hub.BroadcastError(jobID, "SLIDES_FAILED", errMsg)
}
