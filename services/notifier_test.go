package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"instabarakat-leads/models"
)

type recordingSender struct {
	to      []string
	subject string
	html    string
	err     error
}

func (s *recordingSender) SendMail(to []string, subject, html string) error {
	s.to, s.subject, s.html = to, subject, html
	return s.err
}

func TestMailNotifierRendersLead(t *testing.T) {
	sender := &recordingSender{}
	n := NewMailNotifier(sender, []string{"owner@example.org"}, "instabarakat")

	sub := models.Submission{ID: "sub-1", Name: "Ali <b>", Contact: "+992000000", Instagram: "2000 somoni", Expectations: "learn trading"}
	if err := n.NotifyNewSubmission(context.Background(), sub); err != nil {
		t.Fatalf("NotifyNewSubmission returned error: %v", err)
	}

	if len(sender.to) != 1 || sender.to[0] != "owner@example.org" {
		t.Fatalf("unexpected recipients %v", sender.to)
	}
	if !strings.Contains(sender.subject, "[instabarakat]") || !strings.Contains(sender.subject, "Ali") {
		t.Fatalf("unexpected subject %q", sender.subject)
	}
	if !strings.Contains(sender.html, "Ali &lt;b&gt;") || !strings.Contains(sender.html, "learn trading") {
		t.Fatalf("body not rendered or not escaped: %s", sender.html)
	}
}

func TestMailNotifierSkipsWithoutRecipients(t *testing.T) {
	sender := &recordingSender{err: errors.New("should not be called")}
	n := NewMailNotifier(sender, nil, "instabarakat")
	if err := n.NotifyNewSubmission(context.Background(), models.Submission{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if sender.subject != "" {
		t.Fatal("sender was called")
	}
}

func TestMailNotifierWrapsSendFailure(t *testing.T) {
	sendErr := errors.New("smtp down")
	n := NewMailNotifier(&recordingSender{err: sendErr}, []string{"owner@example.org"}, "instabarakat")
	err := n.NotifyNewSubmission(context.Background(), models.Submission{ID: "sub-1"})
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	clock := newStepClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Second)
	store := newMemoryStore(clock)
	notifier := &chanNotifier{ch: make(chan models.Submission, 1), err: errors.New("smtp down")}
	svc := NewSubmissionService(store, notifier, clock)

	if _, err := svc.Submit(context.Background(), SubmissionInput{Name: "a", Contact: "b", Instagram: "c", Expectations: "d"}); err != nil {
		t.Fatalf("Submit should not fail on notifier error: %v", err)
	}
	<-notifier.ch
}
