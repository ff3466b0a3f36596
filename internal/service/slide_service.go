package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/journeycircle/api/internal/model"
	"github.com/redis/go-redis/v9"
)

// TaskTypeSlideDeck is the asynq task type for slide-deck assembly
const TaskTypeSlideDeck = "slides:generate"

const jobTTL = 24 * time.Hour

// ErrJobNotFound is returned when a job id is unknown or expired
var ErrJobNotFound = errors.New("job not found")

// SlideService queues and tracks slide-deck assembly jobs. Job records live
// in Redis (24h retention); without Redis an in-process map is used.
type SlideService struct {
	redis       *redis.Client
	asynqClient *asynq.Client

	mu   sync.Mutex
	jobs map[string]*model.Job // memory fallback
}

func NewSlideService(redisClient *redis.Client, asynqClient *asynq.Client) *SlideService {
	return &SlideService{
		redis:       redisClient,
		asynqClient: asynqClient,
		jobs:        make(map[string]*model.Job),
	}
}

// Start queues a slide-deck assembly job
func (s *SlideService) Start(ctx context.Context, req *model.DeckStartRequest) (*model.DeckStartResponse, error) {
	jobID := uuid.New().String()
	now := time.Now()

	payload := &model.DeckJobPayload{
		SessionID: req.SessionID,
		AssetID:   req.AssetID,
		Slides:    req.Slides,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	job := &model.Job{
		ID:        jobID,
		SessionID: req.SessionID,
		Status:    model.JobStatusQueued,
		Progress:  0,
		Payload:   payloadBytes,
		CreatedAt: now,
	}
	if err := s.saveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	if s.asynqClient != nil {
		task, err := newSlideDeckTask(jobID, payloadBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		_, err = s.asynqClient.Enqueue(task,
			asynq.Queue("slides"),
			asynq.MaxRetry(2),
			asynq.Retention(jobTTL),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to enqueue task: %w", err)
		}
	}

	return &model.DeckStartResponse{
		JobID:     jobID,
		Status:    model.JobStatusQueued,
		CreatedAt: now,
	}, nil
}

// GetStatus returns the current status of a slide-deck job
func (s *SlideService) GetStatus(ctx context.Context, jobID string) (*model.DeckStatusResponse, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return &model.DeckStatusResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Progress:    job.Progress,
		CurrentStep: job.CurrentStep,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
	}, nil
}

// GetResult returns the rendered deck for a completed job
func (s *SlideService) GetResult(ctx context.Context, jobID string) (*model.DeckResultResponse, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusSucceeded {
		return nil, fmt.Errorf("job not completed")
	}

	var result model.DeckResultResponse
	if err := json.Unmarshal(job.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

// Cancel marks a queued or running job canceled. The worker checks the job
// record between slides and stops at the next boundary.
func (s *SlideService) Cancel(ctx context.Context, jobID string) (*model.DeckCancelResponse, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusQueued && job.Status != model.JobStatusRunning {
		return &model.DeckCancelResponse{Success: false, JobID: jobID, Status: job.Status}, nil
	}

	job.Status = model.JobStatusCanceled
	now := time.Now()
	job.CompletedAt = &now
	if err := s.saveJob(ctx, job); err != nil {
		return nil, err
	}
	return &model.DeckCancelResponse{Success: true, JobID: jobID, Status: model.JobStatusCanceled}, nil
}

// MarkRunning moves a job to running with a start timestamp
func (s *SlideService) MarkRunning(ctx context.Context, jobID string) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	now := time.Now()
	job.Status = model.JobStatusRunning
	job.StartedAt = &now
	return s.saveJob(ctx, job)
}

// UpdateProgress updates job progress and the human-readable step label
func (s *SlideService) UpdateProgress(ctx context.Context, jobID string, progress int, step string) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	job.Progress = progress
	job.CurrentStep = step
	return s.saveJob(ctx, job)
}

// CompleteJob stores the result and marks the job succeeded
func (s *SlideService) CompleteJob(ctx context.Context, jobID string, result *model.DeckResultResponse) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	now := time.Now()
	job.Status = model.JobStatusSucceeded
	job.Progress = 100
	job.CurrentStep = ""
	job.Result = resultBytes
	job.CompletedAt = &now
	return s.saveJob(ctx, job)
}

// FailJob marks the job failed with an operator-facing message
func (s *SlideService) FailJob(ctx context.Context, jobID, errMsg string) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	now := time.Now()
	job.Status = model.JobStatusFailed
	job.Error = &errMsg
	job.CompletedAt = &now
	job.RetryCount++
	return s.saveJob(ctx, job)
}

// GetJob loads the raw job record
func (s *SlideService) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	if s.redis == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		job, ok := s.jobs[jobID]
		if !ok {
			return nil, ErrJobNotFound
		}
		copied := *job
		return &copied, nil
	}

	data, err := s.redis.Get(ctx, jobKey(jobID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *SlideService) saveJob(ctx context.Context, job *model.Job) error {
	if s.redis == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		copied := *job
		s.jobs[job.ID] = &copied
		return nil
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, jobKey(job.ID), data, jobTTL).Err()
}

func jobKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

func newSlideDeckTask(jobID string, payload []byte) (*asynq.Task, error) {
	taskPayload := map[string]interface{}{
		"jobId":   jobID,
		"payload": payload,
	}
	data, err := json.Marshal(taskPayload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSlideDeck, data), nil
}
