package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"instabarakat-leads/models"
	"instabarakat-leads/utils"
)

const notifyTimeout = 30 * time.Second

// SubmissionInput is the landing-page form.
type SubmissionInput struct {
	Name         string `form:"name" json:"name" binding:"required"`
	Contact      string `form:"contact" json:"contact" binding:"required"`
	Instagram    string `form:"instagram" json:"instagram" binding:"required"`
	Expectations string `form:"expectations" json:"expectations" binding:"required"`
}

// StatusUpdate is the admin edit form. A nil Notes clears the notes.
type StatusUpdate struct {
	Status string  `form:"status" json:"status" binding:"required"`
	Notes  *string `form:"notes" json:"notes"`
}

// SubmissionService runs the submission → storage → review → status flow
// against a SubmissionStore.
type SubmissionService struct {
	store    SubmissionStore
	notifier Notifier
	clock    Clock
}

func NewSubmissionService(store SubmissionStore, notifier Notifier, clock Clock) *SubmissionService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if clock == nil {
		clock = NewMonotonicClock(nil)
	}
	return &SubmissionService{store: store, notifier: notifier, clock: clock}
}

// Submit validates the four fields and inserts one pending record.
// Resubmitting the same input creates another record.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*models.Submission, error) {
	sub := &models.Submission{
		Name:         utils.SanitizeInput(in.Name),
		Contact:      utils.SanitizeInput(in.Contact),
		Instagram:    utils.SanitizeInput(in.Instagram),
		Expectations: utils.SanitizeInput(in.Expectations),
		Status:       models.StatusPending,
	}

	if field, empty := utils.FirstEmpty(
		utils.RequiredField{Name: "name", Value: sub.Name},
		utils.RequiredField{Name: "contact", Value: sub.Contact},
		utils.RequiredField{Name: "instagram", Value: sub.Instagram},
		utils.RequiredField{Name: "expectations", Value: sub.Expectations},
	); empty {
		return nil, &FieldError{Field: field}
	}

	if err := s.store.InsertSubmission(ctx, sub); err != nil {
		log.Printf("Error submitting form: %v", err)
		return nil, err
	}
	log.Printf("Submission %s stored", sub.ID)
	s.observe(*sub)

	go s.notify(persistentContext(ctx), *sub)
	return sub, nil
}

func (s *SubmissionService) notify(ctx context.Context, sub models.Submission) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyNewSubmission(ctx, sub); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// List loads every record, newest first.
func (s *SubmissionService) List(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		log.Printf("Error loading submissions: %v", err)
		return nil, err
	}
	s.observe(subs...)
	return subs, nil
}

// observe feeds store-set stamps back to the clock so updated_at stays after
// them even when the store's clock runs ahead of ours.
func (s *SubmissionService) observe(subs ...models.Submission) {
	obs, ok := s.clock.(timeObserver)
	if !ok {
		return
	}
	for _, sub := range subs {
		obs.Observe(sub.CreatedAt)
		obs.Observe(sub.UpdatedAt)
	}
}

// Find loads the list and picks the record with the given id.
func (s *SubmissionService) Find(ctx context.Context, id string) (*models.Submission, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].ID == id {
			return &subs[i], nil
		}
	}
	return nil, ErrSubmissionNotFound
}

// UpdateStatus sets status and notes and refreshes updated_at.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id string, update StatusUpdate) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrSubmissionNotFound
	}

	status, ok := models.ParseSubmissionStatus(update.Status)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, update.Status)
	}

	notes := ""
	if update.Notes != nil {
		notes = *update.Notes
	}

	changes := SubmissionChanges{
		Status:    status,
		Notes:     notes,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.store.UpdateSubmission(ctx, id, changes); err != nil {
		log.Printf("Error updating submission %s: %v", id, err)
		return err
	}
	log.Printf("Submission %s set to %s", id, status)
	return nil
}

// Delete removes a record permanently.
func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrSubmissionNotFound
	}
	if err := s.store.DeleteSubmission(ctx, id); err != nil {
		log.Printf("Error deleting submission %s: %v", id, err)
		return err
	}
	log.Printf("Submission %s deleted", id)
	return nil
}

// Review is one dashboard load: the full set, the filtered view and counters.
type Review struct {
	All      []models.Submission
	Filtered []models.Submission
	Stats    SubmissionStats
}

// Review loads the store and applies f.
func (s *SubmissionService) Review(ctx context.Context, f SubmissionFilter) (*Review, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := f.Apply(all)
	return &Review{
		All:      all,
		Filtered: filtered,
		Stats:    ComputeStats(all, filtered),
	}, nil
}
