package storage

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/foldbook/internal/models"
)

// JobStore keeps finished jobs in memory. When it holds more than maxJobs
// jobs the oldest are dropped.
type JobStore struct {
	jobs    map[string]*models.Job
	maxJobs int
	mu      sync.RWMutex
}

// New returns a store holding at most maxJobs jobs, or any number if
// maxJobs is not positive.
func New(maxJobs int) *JobStore {
	return &JobStore{
		jobs:    make(map[string]*models.Job),
		maxJobs: maxJobs,
	}
}

func (s *JobStore) Get(jobID string) (*models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, exists := s.jobs[jobID]
	return job, exists
}

func (s *JobStore) Set(jobID string, job *models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = job

	for s.maxJobs > 0 && len(s.jobs) > s.maxJobs {
		oldest := s.oldest(jobID)
		delete(s.jobs, oldest)
		slog.Debug("Evicted job", "job_id", oldest, "max_jobs", s.maxJobs)
	}
}

// oldest returns the id of the job that List would put first, skipping keep.
func (s *JobStore) oldest(keep string) string {
	var id string
	var first *models.Job
	for k, v := range s.jobs {
		if k == keep {
			continue
		}
		if first == nil || before(v, first) {
			id, first = k, v
		}
	}
	return id
}

func before(a, b *models.Job) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// List returns all jobs, oldest first.
func (s *JobStore) List() []*models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Job, 0, len(s.jobs))
	for _, v := range s.jobs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[i], result[j])
	})
	return result
}

// Delete removes a job and reports whether it existed.
func (s *JobStore) Delete(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.jobs[jobID]
	delete(s.jobs, jobID)
	return exists
}

func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
