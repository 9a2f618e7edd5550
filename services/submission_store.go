package services

import (
	"context"
	"fmt"
	"time"

	"instabarakat-leads/config"
	"instabarakat-leads/models"
)

// SubmissionStore is the record store holding the submissions table.
type SubmissionStore interface {
	// ListSubmissions returns every record ordered by created_at descending.
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	// InsertSubmission stores sub and fills in the fields assigned by the store.
	InsertSubmission(ctx context.Context, sub *models.Submission) error
	UpdateSubmission(ctx context.Context, id string, changes SubmissionChanges) error
	DeleteSubmission(ctx context.Context, id string) error
}

// SubmissionChanges is the admin-editable part of a record.
type SubmissionChanges struct {
	Status    models.SubmissionStatus `json:"status"`
	Notes     string                  `json:"notes"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// OpenSubmissionStore builds the store selected by cfg.StoreURL. SQL backends
// are migrated before they are returned.
func OpenSubmissionStore(cfg *config.Config, clock Clock) (SubmissionStore, error) {
	backend, err := cfg.StoreBackend()
	if err != nil {
		return nil, err
	}

	if backend == config.StoreBackendREST {
		return NewRESTSubmissionStore(cfg.StoreURL, cfg.StoreKey, cfg.StoreTimeout), nil
	}

	db, err := config.OpenDatabase(cfg, clock.Now)
	if err != nil {
		return nil, err
	}
	store := NewGormSubmissionStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate submissions: %w", err)
	}
	return store, nil
}
