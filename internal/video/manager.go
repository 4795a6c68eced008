package video

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

// JobStatus is the client-visible lifecycle of one video request.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job tracks one submitted generation.
type Job struct {
	ID       string    `json:"id"`
	Status   JobStatus `json:"status"`
	VideoURI string    `json:"videoUri,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Terminal jobs stay queryable for this long after finishing, then get
// evicted so the map stays bounded on a long-lived server.
const defaultJobRetention = time.Hour

// trackedJob pairs a job with the time it reached a terminal status.
type trackedJob struct {
	Job
	finishedAt time.Time
}

// Manager gates submissions, tracks jobs in memory and runs one poll loop
// per job in the background.
type Manager struct {
	client    GenerationClient
	poller    *Poller
	logger    *zap.Logger
	retention time.Duration
	now       func() time.Time

	mu   sync.Mutex
	jobs map[string]trackedJob
}

func NewManager(client GenerationClient, poller *Poller, logger *zap.Logger) *Manager {
	return &Manager{
		client:    client,
		poller:    poller,
		logger:    logger.Named("video"),
		retention: defaultJobRetention,
		now:       time.Now,
		jobs:      make(map[string]trackedJob),
	}
}

// Start validates the ratio, submits the prompt and begins polling in the
// background. The submission gate runs before any provider call: only the
// two video-eligible ratios ever reach Submit.
func (m *Manager) Start(ctx context.Context, prompt string, aspectRatio models.AspectRatio) (Job, error) {
	if !models.VideoEligible(aspectRatio) {
		return Job{}, models.ErrAspectRatioUnsupported
	}

	op, err := m.client.Submit(ctx, prompt, aspectRatio)
	if err != nil {
		m.logger.Warn("video submission failed", zap.Error(err))
		return Job{}, err
	}

	job := Job{ID: op.ID, Status: JobPending}
	m.mu.Lock()
	m.pruneLocked()
	m.jobs[job.ID] = trackedJob{Job: job}
	m.mu.Unlock()

	// The poll loop outlives the submitting request; its own deadline
	// bounds it.
	go m.run(op)

	m.logger.Info("video generation started", zap.String("operation", op.ID), zap.String("aspect_ratio", string(aspectRatio)))
	return job, nil
}

func (m *Manager) run(op Operation) {
	final, err := m.poller.Wait(context.Background(), op)

	m.mu.Lock()
	defer m.mu.Unlock()

	tracked := m.jobs[op.ID]
	if err != nil {
		tracked.Status = JobFailed
		tracked.Error = err.Error()
	} else {
		tracked.Status = JobDone
		tracked.VideoURI = final.VideoURI
	}
	tracked.finishedAt = m.now()
	m.jobs[op.ID] = tracked
}

// Get returns the current state of a job. Terminal jobs older than the
// retention window are gone.
func (m *Manager) Get(id string) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	tracked, ok := m.jobs[id]
	if !ok {
		return Job{}, models.ErrVideoNotFound
	}
	return tracked.Job, nil
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.retention)
	for id, tracked := range m.jobs {
		if !tracked.finishedAt.IsZero() && tracked.finishedAt.Before(cutoff) {
			delete(m.jobs, id)
		}
	}
}
