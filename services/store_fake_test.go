package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"instabarakat-leads/models"
)

// stepClock advances by step on every call.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{t: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

type recordedUpdate struct {
	id      string
	changes SubmissionChanges
}

// memoryStore is an in-memory SubmissionStore that records every call.
type memoryStore struct {
	mu    sync.Mutex
	clock Clock
	seq   int
	rows  []models.Submission

	inserts []models.Submission
	updates []recordedUpdate
	deletes []string

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func newMemoryStore(clock Clock) *memoryStore {
	return &memoryStore{clock: clock}
}

func (m *memoryStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]models.Submission(nil), m.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts = append(m.inserts, *sub)
	if m.insertErr != nil {
		return m.insertErr
	}
	m.seq++
	sub.ID = fmt.Sprintf("sub-%d", m.seq)
	if sub.Status == "" {
		sub.Status = models.StatusPending
	}
	now := m.clock.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	m.rows = append(m.rows, *sub)
	return nil
}

func (m *memoryStore) UpdateSubmission(ctx context.Context, id string, changes SubmissionChanges) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, recordedUpdate{id: id, changes: changes})
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = changes.Status
			m.rows[i].Notes = changes.Notes
			m.rows[i].UpdatedAt = changes.UpdatedAt
			return nil
		}
	}
	return ErrSubmissionNotFound
}

func (m *memoryStore) DeleteSubmission(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrSubmissionNotFound
}
