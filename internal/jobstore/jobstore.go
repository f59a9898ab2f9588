// Package jobstore keeps finished and in-flight render jobs keyed by a
// generated id, so the web layer can hand the browser an id, let it
// poll, and stream the PDF when the build completes. Entries expire
// after a TTL; nothing is persisted.
package jobstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Status tracks a job through its lifetime.
type Status int

const (
	StatusPending Status = iota
	StatusDone
	StatusFailed
)

// Job is one render request and, eventually, its result.
type Job struct {
	ID       string
	Status   Status
	PDF      []byte
	Filename string
	Err      string
	Created  time.Time
	finished time.Time
}

// Store is a TTL-evicting in-memory job map, safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
	now  func() time.Time
}

// New builds a store whose finished jobs expire after ttl. A zero ttl
// defaults to 15 minutes.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create registers a new pending job and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = &Job{ID: id, Status: StatusPending, Created: s.now()}
	return id
}

// Complete stores the finished PDF for a job. Unknown ids are ignored
// (the job may already have been evicted).
func (s *Store) Complete(id string, pdf []byte, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return
	}
	j.Status = StatusDone
	j.PDF = pdf
	j.Filename = filename
	j.finished = s.now()
}

// Fail records a failed build.
func (s *Store) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return
	}
	j.Status = StatusFailed
	j.Err = err.Error()
	j.finished = s.now()
}

// Get returns a copy of the job, if present.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Sweep evicts finished jobs older than the TTL and returns how many
// were removed. Pending jobs are never evicted by age alone.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, j := range s.jobs {
		if j.Status != StatusPending && j.finished.Before(cutoff) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps on an interval until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := s.Sweep(); n > 0 {
					log.Debug().Int("evicted", n).Msg("job store sweep")
				}
			}
		}
	}()
}
