package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/journeycircle/api/internal/client"
	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/internal/store"
	ws "github.com/journeycircle/api/internal/websocket"
	"github.com/journeycircle/api/internal/workflow"
)

var imageRetryDelay = 2 * time.Second

// Controller drives the generation lifecycle for every AI-produced artifact:
// none -> loading -> success | error, plus the manual escape hatch. All state
// lives in the session store; the controller serializes requests per artifact
// id and guarantees a superseded request never overwrites a newer outcome.
type Controller struct {
	sessions *workflow.Store
	db       *store.Store
	text     client.TextGenerator
	images   client.ImageGenerator
	inflight *client.Inflight
	hub      *ws.Hub
}

// NewController creates the generation controller. text, images and hub may
// be nil; unconfigured providers fall back to mock payloads.
func NewController(sessions *workflow.Store, db *store.Store, text client.TextGenerator, images client.ImageGenerator, hub *ws.Hub) *Controller {
	return &Controller{
		sessions: sessions,
		db:       db,
		text:     text,
		images:   images,
		inflight: client.NewInflight(),
		hub:      hub,
	}
}

// CheckStatus reports whether an AI provider is usable
func (c *Controller) CheckStatus() *model.CheckStatusResponse {
	if !c.configured() {
		return &model.CheckStatusResponse{
			Configured: false,
			Message:    "AI generation is not configured. Add an API key or continue manually.",
		}
	}
	return &model.CheckStatusResponse{
		Configured: true,
		Model:      c.text.Model(),
		Message:    "ready",
	}
}

// GenerateProblemTitles produces the problem-title batch for a service area.
// A second call while one is loading is rejected with ErrAlreadyInProgress;
// a prior success is served from cache unless force_refresh is set.
func (c *Controller) GenerateProblemTitles(ctx context.Context, sessionID string, req *model.ProblemTitlesRequest) (*model.ProblemTitlesResponse, error) {
	id := model.ProblemTitlesID(req.ServiceAreaID)

	if !req.ForceRefresh {
		if titles, ok := c.cachedPayload(ctx, sessionID, id); ok {
			return &model.ProblemTitlesResponse{Success: true, Titles: titles, Count: len(titles), Cached: true}, nil
		}
	}

	seq, err := c.begin(ctx, sessionID, id, false)
	if err != nil {
		return nil, err
	}

	titles, err := c.generateTitles(ctx, id, buildProblemTitlesPrompt(req), func() []string {
		return mockProblemTitles(req.ServiceAreaName)
	})
	if err != nil {
		if client.IsCancelled(err) {
			return nil, client.ErrCancelled
		}
		msg := titlesErrorMessage(err)
		if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
			rec.Status = model.GenerationStatusError
			rec.Error = msg
		}); ferr != nil {
			return nil, ferr
		}
		return &model.ProblemTitlesResponse{Error: msg}, nil
	}

	applied, err := c.succeedTitles(ctx, sessionID, id, seq, titles)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}
	return &model.ProblemTitlesResponse{Success: true, Titles: titles, Count: len(titles)}, nil
}

// GenerateSolutionTitles produces solution titles for one problem. Unlike
// problem titles, a newer call supersedes a loading one: the in-flight
// request is cancelled and the new one proceeds.
func (c *Controller) GenerateSolutionTitles(ctx context.Context, sessionID string, req *model.SolutionTitlesRequest) (*model.SolutionTitlesResponse, error) {
	id := model.SolutionTitlesID(req.ProblemID)

	if !req.ForceRefresh {
		if titles, ok := c.cachedPayload(ctx, sessionID, id); ok {
			return &model.SolutionTitlesResponse{Success: true, Titles: titles, Cached: true}, nil
		}
	}

	seq, err := c.begin(ctx, sessionID, id, true)
	if err != nil {
		return nil, err
	}

	titles, err := c.generateTitles(ctx, id, buildSolutionTitlesPrompt(req), func() []string {
		return mockSolutionTitles(req.ProblemTitle)
	})
	if err != nil {
		if client.IsCancelled(err) {
			return nil, client.ErrCancelled
		}
		msg := titlesErrorMessage(err)
		if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
			rec.Status = model.GenerationStatusError
			rec.Error = msg
		}); ferr != nil {
			return nil, ferr
		}
		return &model.SolutionTitlesResponse{Error: msg}, nil
	}

	applied, err := c.succeedTitles(ctx, sessionID, id, seq, titles)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}
	return &model.SolutionTitlesResponse{Success: true, Titles: titles}, nil
}

// GenerateAllSolutions runs solution-title generation for every selected
// problem strictly in sequence and aggregates per-problem outcomes. One
// failure does not abort the run.
func (c *Controller) GenerateAllSolutions(ctx context.Context, sessionID string, req *model.AllSolutionsRequest) (*model.AllSolutionsResponse, error) {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.SelectedProblems) == 0 {
		return nil, validationf("no problems selected")
	}

	resp := &model.AllSolutionsResponse{AllSuccess: true, Outcomes: []model.ProblemOutcome{}}
	for _, p := range session.SelectedProblems {
		if ctx.Err() != nil {
			return nil, client.ErrCancelled
		}
		one, err := c.GenerateSolutionTitles(ctx, sessionID, &model.SolutionTitlesRequest{
			ProblemID:       p.ID,
			ProblemTitle:    p.Title,
			ServiceAreaName: req.ServiceAreaName,
			Industries:      req.Industries,
			BrainContent:    req.BrainContent,
			ForceRefresh:    req.ForceRefresh,
		})

		outcome := model.ProblemOutcome{ProblemID: p.ID}
		switch {
		case err != nil && client.IsCancelled(err):
			return nil, client.ErrCancelled
		case err != nil:
			outcome.Error = err.Error()
		case one.Success:
			outcome.Success = true
			outcome.Titles = one.Titles
		default:
			outcome.Error = one.Error
		}
		if !outcome.Success {
			resp.AllSuccess = false
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}
	return resp, nil
}

// GenerateOutline produces a content outline and materializes the journey
// asset row on first success.
func (c *Controller) GenerateOutline(ctx context.Context, sessionID string, req *model.OutlineRequest) (*model.OutlineResponse, error) {
	id := model.OutlineID(req.LinkedToType, req.LinkedToID, req.AssetType)

	if !req.ForceRefresh {
		if rec, ok := c.record(ctx, sessionID, id); ok && rec.Status == model.GenerationStatusSuccess && rec.Text != "" {
			if asset, err := c.findAsset(ctx, req); err == nil {
				return &model.OutlineResponse{
					Success: true, Outline: rec.Text,
					AssetID: asset.ID, Title: asset.Title, Cached: true,
				}, nil
			}
			// Asset row missing despite a cached outline: regenerate.
		}
	}

	seq, err := c.begin(ctx, sessionID, id, false)
	if err != nil {
		return nil, err
	}

	reqCtx, release := c.inflight.Start(ctx, id)
	defer release()

	var title, outline string
	if !c.configured() {
		title, outline = mockOutline(req)
	} else {
		raw, err := c.text.Complete(reqCtx, outlineSystemPrompt, buildOutlinePrompt(req))
		if err == nil {
			title, outline, err = parseOutline(raw)
		}
		if err == nil && outline == "" {
			err = client.ErrEmptyResult
		}
		if err != nil {
			if client.IsCancelled(err) {
				return nil, client.ErrCancelled
			}
			msg := outlineErrorMessage(err)
			if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
				rec.Status = model.GenerationStatusError
				rec.Error = msg
			}); ferr != nil {
				return nil, ferr
			}
			return &model.OutlineResponse{Error: msg}, nil
		}
	}

	asset, err := c.db.Assets.CreateIfAbsent(ctx, &model.Asset{
		JourneyCircleID: req.JourneyCircleID,
		LinkedToType:    req.LinkedToType,
		LinkedToID:      req.LinkedToID,
		AssetType:       req.AssetType,
		Title:           title,
		Outline:         outline,
	})
	if err != nil {
		c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
			rec.Status = model.GenerationStatusError
			rec.Error = "Failed to save the outline. Please try again."
		})
		return nil, err
	}
	// The row may predate this call (regeneration); push the fresh outline.
	if err := c.db.Assets.UpdateOutline(ctx, asset.ID, outline, title); err != nil {
		return nil, err
	}

	applied, err := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
		now := time.Now()
		rec.Status = model.GenerationStatusSuccess
		rec.Text = outline
		rec.Payload = nil
		rec.Error = ""
		rec.Manual = false
		rec.CachedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}

	if title == "" {
		title = asset.Title
	}
	return &model.OutlineResponse{Success: true, Outline: outline, AssetID: asset.ID, Title: title}, nil
}

// ReviseOutline reworks an existing outline with operator feedback. Feedback
// must be non-empty; approved assets are immutable.
func (c *Controller) ReviseOutline(ctx context.Context, sessionID string, req *model.ReviseOutlineRequest) (*model.ReviseOutlineResponse, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, validationf("feedback is required")
	}

	asset, err := c.db.Assets.Get(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == model.AssetStatusApproved || asset.Status == model.AssetStatusPublished {
		return nil, ErrWrongState
	}

	id := model.OutlineID(asset.LinkedToType, asset.LinkedToID, asset.AssetType)
	seq, err := c.beginRevision(ctx, sessionID, id, req.Feedback)
	if err != nil {
		return nil, err
	}

	reqCtx, release := c.inflight.Start(ctx, id)
	defer release()

	var outline, notes string
	if !c.configured() {
		outline = req.CurrentOutline + "\n\nRevision notes: " + req.Feedback
		notes = "Feedback recorded; no AI provider configured."
	} else {
		raw, err := c.text.Complete(reqCtx, outlineSystemPrompt, buildReviseOutlinePrompt(req))
		if err == nil {
			outline, notes, err = parseRevisedOutline(raw)
		}
		if err == nil && outline == "" {
			err = client.ErrEmptyResult
		}
		if err != nil {
			if client.IsCancelled(err) {
				return nil, client.ErrCancelled
			}
			msg := outlineErrorMessage(err)
			if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
				rec.Status = model.GenerationStatusError
				rec.Error = msg
			}); ferr != nil {
				return nil, ferr
			}
			return &model.ReviseOutlineResponse{Error: msg}, nil
		}
	}

	if err := c.db.Assets.UpdateOutline(ctx, asset.ID, outline, ""); err != nil {
		return nil, err
	}

	applied, err := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
		now := time.Now()
		rec.Status = model.GenerationStatusSuccess
		rec.Text = outline
		rec.Error = ""
		rec.CachedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}
	return &model.ReviseOutlineResponse{Success: true, Outline: outline, Title: asset.Title, RevisionNotes: notes}, nil
}

// GenerateContent expands an outline into full content and moves the asset
// row to draft.
func (c *Controller) GenerateContent(ctx context.Context, sessionID string, req *model.ContentRequest) (*model.ContentResponse, error) {
	id := model.ContentID(req.AssetID)

	if !req.ForceRefresh {
		if rec, ok := c.record(ctx, sessionID, id); ok && rec.Status == model.GenerationStatusSuccess && rec.Text != "" {
			return &model.ContentResponse{Success: true, Content: rec.Text, Cached: true}, nil
		}
	}

	asset, err := c.db.Assets.Get(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == model.AssetStatusApproved || asset.Status == model.AssetStatusPublished {
		return nil, ErrWrongState
	}

	seq, err := c.begin(ctx, sessionID, id, false)
	if err != nil {
		return nil, err
	}

	reqCtx, release := c.inflight.Start(ctx, id)
	defer release()

	var content string
	if !c.configured() {
		content = mockContent(req.Outline)
	} else {
		raw, err := c.text.CompleteLong(reqCtx, contentSystemPrompt, buildContentPrompt(req))
		if err == nil {
			content = strings.TrimSpace(raw)
			if content == "" {
				err = client.ErrEmptyResult
			}
		}
		if err != nil {
			if client.IsCancelled(err) {
				return nil, client.ErrCancelled
			}
			msg := contentErrorMessage(err)
			if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
				rec.Status = model.GenerationStatusError
				rec.Error = msg
			}); ferr != nil {
				return nil, ferr
			}
			return &model.ContentResponse{Error: msg}, nil
		}
	}

	if err := c.db.Assets.UpdateContent(ctx, asset.ID, content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWrongState
		}
		return nil, err
	}

	applied, err := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
		now := time.Now()
		rec.Status = model.GenerationStatusSuccess
		rec.Text = content
		rec.Error = ""
		rec.Manual = false
		rec.CachedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}
	return &model.ContentResponse{Success: true, Content: content}, nil
}

// ReviseContent reworks generated content with operator feedback
func (c *Controller) ReviseContent(ctx context.Context, sessionID string, req *model.ReviseContentRequest) (*model.ReviseContentResponse, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, validationf("feedback is required")
	}

	asset, err := c.db.Assets.Get(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == model.AssetStatusApproved || asset.Status == model.AssetStatusPublished {
		return nil, ErrWrongState
	}

	id := model.ContentID(req.AssetID)
	seq, err := c.beginRevision(ctx, sessionID, id, req.Feedback)
	if err != nil {
		return nil, err
	}

	reqCtx, release := c.inflight.Start(ctx, id)
	defer release()

	var content string
	if !c.configured() {
		content = req.CurrentContent + "\n\nRevision notes: " + req.Feedback
	} else {
		raw, err := c.text.CompleteLong(reqCtx, contentSystemPrompt, buildReviseContentPrompt(req))
		if err == nil {
			content = strings.TrimSpace(raw)
			if content == "" {
				err = client.ErrEmptyResult
			}
		}
		if err != nil {
			if client.IsCancelled(err) {
				return nil, client.ErrCancelled
			}
			msg := contentErrorMessage(err)
			if _, ferr := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
				rec.Status = model.GenerationStatusError
				rec.Error = msg
			}); ferr != nil {
				return nil, ferr
			}
			return &model.ReviseContentResponse{Error: msg}, nil
		}
	}

	if err := c.db.Assets.UpdateContent(ctx, asset.ID, content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWrongState
		}
		return nil, err
	}

	applied, err := c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
		now := time.Now()
		rec.Status = model.GenerationStatusSuccess
		rec.Text = content
		rec.Error = ""
		rec.CachedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, client.ErrCancelled
	}
	return &model.ReviseContentResponse{Success: true, Content: content}, nil
}

// Approve moves the asset to approved and locks its records against further
// revision. One-way: the storage layer rejects backward transitions.
func (c *Controller) Approve(ctx context.Context, sessionID string, assetID int64) (*model.ApproveResponse, error) {
	asset, err := c.db.Assets.Approve(ctx, assetID)
	if err != nil {
		return nil, err
	}

	contentID := model.ContentID(assetID)
	outlineID := model.OutlineID(asset.LinkedToType, asset.LinkedToID, asset.AssetType)
	if _, err := c.sessions.Update(ctx, sessionID, "generations", func(s *model.WorkflowSession) error {
		s.Record(contentID).Approved = true
		s.Record(outlineID).Approved = true
		return nil
	}); err != nil {
		return nil, err
	}
	return &model.ApproveResponse{Success: true, Status: asset.Status, DownloadReady: true}, nil
}

// GenerateSlideImage renders one slide image, retrying once after a short
// delay on a retryable failure.
func (c *Controller) GenerateSlideImage(ctx context.Context, req *model.SlideImageRequest) (*model.SlideImageResponse, error) {
	if c.images == nil || !c.configured() {
		return &model.SlideImageResponse{
			Success:     true,
			ImageBase64: mockImageBase64,
			MimeType:    "image/png",
			ModelUsed:   "mock",
		}, nil
	}

	prompt := buildSlideImagePrompt(req)
	quality := string(req.Quality)
	if quality == "" {
		quality = string(model.ImageQualityStandard)
	}

	img, err := c.images.GenerateImage(ctx, prompt, quality)
	if err != nil && retryable(err) {
		select {
		case <-time.After(imageRetryDelay):
		case <-ctx.Done():
			return nil, client.ErrCancelled
		}
		img, err = c.images.GenerateImage(ctx, prompt, quality)
	}
	if err != nil {
		if client.IsCancelled(err) {
			return nil, client.ErrCancelled
		}
		return &model.SlideImageResponse{Error: friendlyMessage(err)}, nil
	}
	return &model.SlideImageResponse{
		Success:     true,
		ImageBase64: img.Base64,
		MimeType:    img.MimeType,
		ModelUsed:   img.Model,
	}, nil
}

// EnableManual switches an artifact to manual mode, aborting any in-flight
// request for it.
func (c *Controller) EnableManual(ctx context.Context, sessionID string, id model.ArtifactID) error {
	c.inflight.Cancel(id)
	_, err := c.sessions.Update(ctx, sessionID, "generations", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		rec.Status = model.GenerationStatusManual
		rec.Manual = true
		rec.Error = ""
		rec.Seq++
		return nil
	})
	if err == nil {
		c.notify(sessionID, id, model.GenerationStatusManual)
	}
	return err
}

// SetManualPayload stores operator-entered content for a manual artifact
func (c *Controller) SetManualPayload(ctx context.Context, sessionID string, id model.ArtifactID, titles []string, text string) error {
	_, err := c.sessions.Update(ctx, sessionID, "generations", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		rec.Status = model.GenerationStatusManual
		rec.Manual = true
		rec.Error = ""
		if titles != nil {
			rec.Payload = titles
		}
		if text != "" {
			rec.Text = text
		}
		rec.Seq++
		return nil
	})
	if err == nil {
		c.notify(sessionID, id, model.GenerationStatusManual)
	}
	return err
}

// BackToAI leaves manual mode. The record returns to none (or success if a
// prior generation survives) until the next generate call.
func (c *Controller) BackToAI(ctx context.Context, sessionID string, id model.ArtifactID) error {
	var status model.GenerationStatus
	_, err := c.sessions.Update(ctx, sessionID, "generations", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		rec.Manual = false
		if len(rec.Payload) > 0 || rec.Text != "" {
			rec.Status = model.GenerationStatusSuccess
		} else {
			rec.Status = model.GenerationStatusNone
		}
		rec.Seq++
		status = rec.Status
		return nil
	})
	if err == nil {
		c.notify(sessionID, id, status)
	}
	return err
}

// Cancel aborts the in-flight request for an artifact. Cancellation is not a
// failure: the record rolls back to its pre-request state, keeping any prior
// payload.
func (c *Controller) Cancel(ctx context.Context, sessionID string, id model.ArtifactID) error {
	c.inflight.Cancel(id)
	var status model.GenerationStatus
	_, err := c.sessions.Update(ctx, sessionID, "", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		if rec.Status != model.GenerationStatusLoading {
			status = rec.Status
			return nil
		}
		rec.Seq++
		rec.Error = ""
		if len(rec.Payload) > 0 || rec.Text != "" {
			rec.Status = model.GenerationStatusSuccess
		} else {
			rec.Status = model.GenerationStatusNone
		}
		status = rec.Status
		return nil
	})
	if err == nil {
		c.notify(sessionID, id, status)
	}
	return err
}

func (c *Controller) configured() bool {
	return c.text != nil && c.text.IsConfigured()
}

func (c *Controller) notify(sessionID string, id model.ArtifactID, status model.GenerationStatus) {
	if c.hub != nil {
		c.hub.BroadcastGeneration(sessionID, id, status)
	}
}

// begin moves the record to loading and bumps the sequence. With supersede
// false a loading record rejects the call; with supersede true the new call
// takes over and the predecessor becomes stale.
func (c *Controller) begin(ctx context.Context, sessionID string, id model.ArtifactID, supersede bool) (int64, error) {
	var seq int64
	_, err := c.sessions.Update(ctx, sessionID, "", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		if rec.Status == model.GenerationStatusLoading && !supersede {
			return ErrAlreadyInProgress
		}
		rec.Status = model.GenerationStatusLoading
		rec.Error = ""
		rec.Seq++
		seq = rec.Seq
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.notify(sessionID, id, model.GenerationStatusLoading)
	return seq, nil
}

// beginRevision is begin plus the append-only feedback trail
func (c *Controller) beginRevision(ctx context.Context, sessionID string, id model.ArtifactID, feedback string) (int64, error) {
	var seq int64
	_, err := c.sessions.Update(ctx, sessionID, "feedbackHistory", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		if rec.Status == model.GenerationStatusLoading {
			return ErrAlreadyInProgress
		}
		if rec.Approved {
			return ErrWrongState
		}
		s.FeedbackHistory = append(s.FeedbackHistory, model.FeedbackEntry{
			ArtifactID: id,
			Feedback:   feedback,
			Timestamp:  time.Now(),
		})
		rec.Status = model.GenerationStatusLoading
		rec.Error = ""
		rec.Seq++
		seq = rec.Seq
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.notify(sessionID, id, model.GenerationStatusLoading)
	return seq, nil
}

// finish applies the outcome unless the record's sequence moved on, in which
// case this request was superseded and the outcome is dropped.
func (c *Controller) finish(ctx context.Context, sessionID string, id model.ArtifactID, seq int64, apply func(*model.GenerationRecord)) (bool, error) {
	var applied bool
	var status model.GenerationStatus
	_, err := c.sessions.Update(ctx, sessionID, "", func(s *model.WorkflowSession) error {
		rec := s.Record(id)
		if rec.Seq != seq {
			return nil
		}
		apply(rec)
		applied = true
		status = rec.Status
		return nil
	})
	if err != nil {
		return false, err
	}
	if applied {
		c.notify(sessionID, id, status)
	}
	return applied, nil
}

func (c *Controller) succeedTitles(ctx context.Context, sessionID string, id model.ArtifactID, seq int64, titles []string) (bool, error) {
	return c.finish(ctx, sessionID, id, seq, func(rec *model.GenerationRecord) {
		now := time.Now()
		rec.Status = model.GenerationStatusSuccess
		rec.Payload = titles
		rec.Text = ""
		rec.Error = ""
		rec.Manual = false
		rec.CachedAt = &now
	})
}

// generateTitles runs the provider call under the per-artifact in-flight slot
func (c *Controller) generateTitles(ctx context.Context, id model.ArtifactID, prompt string, mock func() []string) ([]string, error) {
	reqCtx, release := c.inflight.Start(ctx, id)
	defer release()

	if !c.configured() {
		return mock(), nil
	}

	raw, err := c.text.Complete(reqCtx, titlesSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	titles, err := parseTitles(raw)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, client.ErrEmptyResult
	}
	return titles, nil
}

func (c *Controller) cachedPayload(ctx context.Context, sessionID string, id model.ArtifactID) ([]string, bool) {
	rec, ok := c.record(ctx, sessionID, id)
	if !ok {
		return nil, false
	}
	if rec.Status != model.GenerationStatusSuccess || len(rec.Payload) == 0 {
		return nil, false
	}
	return rec.Payload, true
}

// record returns a copy of the record without creating one
func (c *Controller) record(ctx context.Context, sessionID string, id model.ArtifactID) (*model.GenerationRecord, bool) {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, false
	}
	rec, ok := session.Generations[id]
	if !ok {
		return nil, false
	}
	return rec, true
}

func (c *Controller) findAsset(ctx context.Context, req *model.OutlineRequest) (*model.Asset, error) {
	assets, err := c.db.Assets.ListByLinked(ctx, req.LinkedToType, req.LinkedToID)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		a := &assets[i]
		if a.AssetType == req.AssetType && a.JourneyCircleID == req.JourneyCircleID {
			return a, nil
		}
	}
	return nil, store.ErrNotFound
}

func retryable(err error) bool {
	if client.IsCancelled(err) {
		return false
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}

func titlesErrorMessage(err error) string {
	var apiErr *client.APIError
	var netErr *client.NetworkError
	if errors.As(err, &apiErr) || errors.As(err, &netErr) {
		return friendlyMessage(err)
	}
	// Empty batches and unparseable answers read the same to the operator.
	return ErrEmptyTitles
}

func outlineErrorMessage(err error) string {
	var apiErr *client.APIError
	var netErr *client.NetworkError
	if errors.As(err, &apiErr) || errors.As(err, &netErr) {
		return friendlyMessage(err)
	}
	return "No outline was generated. Please try again."
}

func contentErrorMessage(err error) string {
	var apiErr *client.APIError
	var netErr *client.NetworkError
	if errors.As(err, &apiErr) || errors.As(err, &netErr) {
		return friendlyMessage(err)
	}
	return "No content was generated. Please try again."
}

func friendlyMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case client.CodeNotConfigured:
			return "AI generation is not configured. Add an API key or continue manually."
		case client.CodeRateLimited:
			return "The AI service is busy right now. Please try again in a moment."
		case client.CodeUnauthorized:
			return "The AI service rejected the configured credentials."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "The AI service returned an error. Please try again."
	}
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the AI service. Check your connection and try again."
	}
	return "Generation failed. Please try again."
}
