package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"instabarakat-leads/models"
)

const restSubmissionsPath = "/rest/v1/submissions"

// RESTSubmissionStore talks to a hosted PostgREST endpoint (Supabase) that
// exposes the submissions table.
type RESTSubmissionStore struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewRESTSubmissionStore(baseURL, key string, timeout time.Duration) *RESTSubmissionStore {
	return &RESTSubmissionStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: timeout},
	}
}

// restSubmission mirrors a row as PostgREST renders it. Timestamps are kept
// as text because timestamp and timestamptz columns serialize differently.
type restSubmission struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Instagram    string `json:"instagram"`
	Expectations string `json:"expectations"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type restInsert struct {
	Name         string                  `json:"name"`
	Contact      string                  `json:"contact"`
	Instagram    string                  `json:"instagram"`
	Expectations string                  `json:"expectations"`
	Status       models.SubmissionStatus `json:"status"`
}

type restUpdate struct {
	Status    models.SubmissionStatus `json:"status"`
	Notes     string                  `json:"notes"`
	UpdatedAt string                  `json:"updated_at"`
}

type restError struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

var restTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
}

func parseRESTTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range restTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func (r restSubmission) toModel() (models.Submission, error) {
	createdAt, err := parseRESTTime(r.CreatedAt)
	if err != nil {
		return models.Submission{}, err
	}
	updatedAt, err := parseRESTTime(r.UpdatedAt)
	if err != nil {
		return models.Submission{}, err
	}
	return models.Submission{
		ID:           r.ID,
		Name:         r.Name,
		Contact:      r.Contact,
		Instagram:    r.Instagram,
		Expectations: r.Expectations,
		Status:       models.SubmissionStatus(r.Status),
		Notes:        r.Notes,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (s *RESTSubmissionStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var rows []restSubmission
	if err := s.do(ctx, "select", http.MethodGet, query, nil, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		sub, err := row.toModel()
		if err != nil {
			return nil, &StoreError{Op: "select", Message: err.Error()}
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *RESTSubmissionStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	status := sub.Status
	if status == "" {
		status = models.StatusPending
	}
	body := []restInsert{{
		Name:         sub.Name,
		Contact:      sub.Contact,
		Instagram:    sub.Instagram,
		Expectations: sub.Expectations,
		Status:       status,
	}}

	var rows []restSubmission
	if err := s.do(ctx, "insert", http.MethodPost, nil, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &StoreError{Op: "insert", Message: "no row returned"}
	}
	stored, err := rows[0].toModel()
	if err != nil {
		return &StoreError{Op: "insert", Message: err.Error()}
	}
	*sub = stored
	return nil
}

func (s *RESTSubmissionStore) UpdateSubmission(ctx context.Context, id string, changes SubmissionChanges) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	body := restUpdate{
		Status:    changes.Status,
		Notes:     changes.Notes,
		UpdatedAt: changes.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	var rows []restSubmission
	if err := s.do(ctx, "update", http.MethodPatch, query, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (s *RESTSubmissionStore) DeleteSubmission(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	var rows []restSubmission
	if err := s.do(ctx, "delete", http.MethodDelete, query, nil, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (s *RESTSubmissionStore) do(ctx context.Context, op, method string, query url.Values, body, out interface{}) error {
	endpoint := s.baseURL + restSubmissionsPath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &StoreError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &StoreError{Op: op, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr restError
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &StoreError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &StoreError{Op: op, StatusCode: resp.StatusCode, Message: "invalid response: " + err.Error()}
	}
	return nil
}
