package services

import (
	"context"
	"fmt"

	"instabarakat-leads/models"

	"gorm.io/gorm"
)

// GormSubmissionStore keeps submissions in a SQL database through gorm.
type GormSubmissionStore struct {
	db *gorm.DB
}

func NewGormSubmissionStore(db *gorm.DB) *GormSubmissionStore {
	return &GormSubmissionStore{db: db}
}

// Migrate creates or updates the submissions table.
func (s *GormSubmissionStore) Migrate() error {
	return s.db.AutoMigrate(&models.Submission{})
}

func (s *GormSubmissionStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	var rows []models.Submission
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	return rows, nil
}

func (s *GormSubmissionStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *GormSubmissionStore) UpdateSubmission(ctx context.Context, id string, changes SubmissionChanges) error {
	result := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     changes.Status,
			"notes":      changes.Notes,
			"updated_at": changes.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update submission %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (s *GormSubmissionStore) DeleteSubmission(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Submission{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete submission %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
