package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"instabarakat-leads/models"
)

type chanNotifier struct {
	ch  chan models.Submission
	err error
}

func (n *chanNotifier) NotifyNewSubmission(ctx context.Context, sub models.Submission) error {
	n.ch <- sub
	return n.err
}

func newTestService(t *testing.T) (*SubmissionService, *memoryStore, *chanNotifier) {
	t.Helper()
	clock := newStepClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Second)
	store := newMemoryStore(clock)
	notifier := &chanNotifier{ch: make(chan models.Submission, 4)}
	return NewSubmissionService(store, notifier, clock), store, notifier
}

func TestSubmitStoresPendingLeadAndShowsOnReview(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, SubmissionInput{
		Name:         "Ali",
		Contact:      "+992000000",
		Instagram:    "2000 somoni",
		Expectations: "learn trading",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if len(store.inserts) != 1 {
		t.Fatalf("expected one insert, got %d", len(store.inserts))
	}
	if store.inserts[0].Status != models.StatusPending {
		t.Fatalf("insert should carry status pending, got %q", store.inserts[0].Status)
	}
	if sub.ID == "" || sub.CreatedAt.IsZero() {
		t.Fatalf("store-assigned fields missing: %+v", sub)
	}

	select {
	case notified := <-notifier.ch:
		if notified.ID != sub.ID {
			t.Fatalf("notified about %s, want %s", notified.ID, sub.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}

	review, err := svc.Review(ctx, SubmissionFilter{})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if len(review.Filtered) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(review.Filtered))
	}
	got := review.Filtered[0]
	if got.Name != "Ali" || got.Contact != "+992000000" || got.Instagram != "2000 somoni" || got.Expectations != "learn trading" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.StatusLabel() != "В ожидании" {
		t.Fatalf("unexpected label %q", got.StatusLabel())
	}
	if review.Stats.Total != 1 || review.Stats.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", review.Stats)
	}
}

func TestSubmitRejectsEmptyFieldsBeforeStore(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), SubmissionInput{
		Name:         "Ali",
		Contact:      "   ",
		Instagram:    "2000",
		Expectations: "x",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "contact" {
		t.Fatalf("expected contact field error, got %v", err)
	}
	if len(store.inserts) != 0 {
		t.Fatalf("store should not be called, got %d inserts", len(store.inserts))
	}
}

func TestSubmitIsNotIdempotent(t *testing.T) {
	svc, store, _ := newTestService(t)
	in := SubmissionInput{Name: "Ali", Contact: "+992", Instagram: "1", Expectations: "x"}

	first, err := svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if first.ID == second.ID || len(store.rows) != 2 {
		t.Fatalf("resubmission should create a duplicate record")
	}
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.insertErr = &StoreError{Op: "insert", StatusCode: 503, Message: "unavailable"}

	_, err := svc.Submit(context.Background(), SubmissionInput{Name: "a", Contact: "b", Instagram: "c", Expectations: "d"})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestUpdateStatusEveryStatusRefreshesUpdatedAt(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, SubmissionInput{Name: "Ali", Contact: "+992000000", Instagram: "2000 somoni", Expectations: "learn trading"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	previous := sub.UpdatedAt

	for _, status := range models.SubmissionStatuses {
		if err := svc.UpdateStatus(ctx, sub.ID, StatusUpdate{Status: string(status)}); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
		reloaded, err := svc.Find(ctx, sub.ID)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if reloaded.Status != status {
			t.Fatalf("expected %s, got %s", status, reloaded.Status)
		}
		if !reloaded.UpdatedAt.After(previous) {
			t.Fatalf("updated_at %v not after %v", reloaded.UpdatedAt, previous)
		}
		if !reloaded.CreatedAt.Equal(sub.CreatedAt) {
			t.Fatalf("created_at changed")
		}
		previous = reloaded.UpdatedAt
	}
}

func TestUpdateStatusApproveWithNotes(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, SubmissionInput{Name: "Ali", Contact: "+992000000", Instagram: "2000 somoni", Expectations: "learn trading"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	notes := "confirmed"
	if err := svc.UpdateStatus(ctx, sub.ID, StatusUpdate{Status: "approved", Notes: &notes}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if len(store.updates) != 1 {
		t.Fatalf("expected one update call, got %d", len(store.updates))
	}
	call := store.updates[0]
	if call.id != sub.ID || call.changes.Status != models.StatusApproved || call.changes.Notes != "confirmed" {
		t.Fatalf("unexpected update call: %+v", call)
	}
	if !call.changes.UpdatedAt.After(sub.UpdatedAt) {
		t.Fatalf("update should carry a new updated_at")
	}

	reloaded, err := svc.Find(ctx, sub.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if reloaded.StatusLabel() != "Одобрено" {
		t.Fatalf("unexpected label %q", reloaded.StatusLabel())
	}
}

func TestUpdateStatusOmittedNotesClearsThem(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	sub, _ := svc.Submit(ctx, SubmissionInput{Name: "a", Contact: "b", Instagram: "c", Expectations: "d"})

	notes := "first"
	if err := svc.UpdateStatus(ctx, sub.ID, StatusUpdate{Status: "contacted", Notes: &notes}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := svc.UpdateStatus(ctx, sub.ID, StatusUpdate{Status: "contacted"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := store.updates[1].changes.Notes; got != "" {
		t.Fatalf("omitted notes should be sent as empty string, got %q", got)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, store, _ := newTestService(t)
	err := svc.UpdateStatus(context.Background(), "sub-1", StatusUpdate{Status: "archived"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(store.updates) != 0 {
		t.Fatalf("store should not be called")
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.UpdateStatus(context.Background(), "missing", StatusUpdate{Status: "approved"})
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestDeleteRemovesRecordFromLaterLoads(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	keep, _ := svc.Submit(ctx, SubmissionInput{Name: "keep", Contact: "b", Instagram: "c", Expectations: "d"})
	drop, _ := svc.Submit(ctx, SubmissionInput{Name: "drop", Contact: "b", Instagram: "c", Expectations: "d"})

	if err := svc.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != keep.ID {
		t.Fatalf("unexpected records after delete: %v", ids(subs))
	}
	if _, err := svc.Find(ctx, drop.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("deleted record still found: %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Submit(ctx, SubmissionInput{Name: name, Contact: "b", Instagram: "c", Expectations: "d"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if subs[0].Name != "third" || subs[2].Name != "first" {
		t.Fatalf("unexpected order: %s, %s, %s", subs[0].Name, subs[1].Name, subs[2].Name)
	}
}

func TestReviewSurfacesLoadFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.listErr = errors.New("connection refused")
	if _, err := svc.Review(context.Background(), SubmissionFilter{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestMonotonicClockNeverRepeats(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMonotonicClock(func() time.Time { return fixed })

	a := clock.Now()
	b := clock.Now()
	if !b.After(a) {
		t.Fatalf("expected %v after %v", b, a)
	}
	if b.Sub(a) != time.Microsecond {
		t.Fatalf("expected one microsecond step, got %v", b.Sub(a))
	}
}

func TestMonotonicClockObserveRaisesFloor(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMonotonicClock(func() time.Time { return fixed })

	ahead := fixed.Add(5 * time.Minute)
	clock.Observe(ahead)
	if got := clock.Now(); !got.After(ahead) {
		t.Fatalf("Now() = %v, want after observed %v", got, ahead)
	}

	clock.Observe(fixed.Add(-time.Hour))
	if got := clock.Now(); !got.After(ahead) {
		t.Fatalf("an older stamp lowered the floor: %v", got)
	}
}

func TestUpdateStaysAfterStoreStampsWhenStoreClockRunsAhead(t *testing.T) {
	local := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	storeClock := newStepClock(local.Add(10*time.Minute), time.Second)
	store := newMemoryStore(storeClock)
	svc := NewSubmissionService(store, nil, NewMonotonicClock(func() time.Time { return local }))
	ctx := context.Background()

	sub, err := svc.Submit(ctx, SubmissionInput{Name: "a", Contact: "b", Instagram: "c", Expectations: "d"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := svc.UpdateStatus(ctx, sub.ID, StatusUpdate{Status: "approved"}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if got := store.updates[0].changes.UpdatedAt; !got.After(sub.UpdatedAt) {
		t.Fatalf("updated_at %v should follow the stored %v", got, sub.UpdatedAt)
	}

	// rows written by another process are seen through List
	other := models.Submission{ID: "ext-1", Status: models.StatusPending, CreatedAt: local.Add(time.Hour), UpdatedAt: local.Add(time.Hour)}
	store.rows = append(store.rows, other)
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if err := svc.UpdateStatus(ctx, other.ID, StatusUpdate{Status: "contacted"}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if got := store.updates[1].changes.UpdatedAt; !got.After(other.UpdatedAt) {
		t.Fatalf("updated_at %v should follow the stored %v", got, other.UpdatedAt)
	}
}
