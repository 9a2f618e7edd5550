package services

import (
	"fmt"
	"strings"
	"time"

	"instabarakat-leads/models"
)

// DateLayout is the format of the date-range query parameters.
const DateLayout = "2006-01-02"

// SubmissionFilter narrows the loaded record set. Zero-valued fields always
// pass; the three predicates are AND-ed.
type SubmissionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Status    models.SubmissionStatus
}

// FilterQuery is the raw dashboard / API / CLI filter input.
type FilterQuery struct {
	StartDate string `form:"start_date" json:"start_date"`
	EndDate   string `form:"end_date" json:"end_date"`
	Search    string `form:"search" json:"search"`
	Status    string `form:"status" json:"status"`
}

// Filter fields a FilterWarning can name.
const (
	FilterFieldStartDate = "start_date"
	FilterFieldEndDate   = "end_date"
	FilterFieldStatus    = "status"
)

// FilterWarning reports one filter input that was dropped. Callers render it
// in their own language keyed by Field.
type FilterWarning struct {
	Field string
	Value string
}

func (w FilterWarning) String() string {
	return fmt.Sprintf("invalid %s %q", w.Field, w.Value)
}

// ParseFilter converts q into a filter. Dates are calendar days in loc and
// the end date covers its whole day. Unparseable inputs are dropped and
// reported as warnings. The search term is kept as typed; a blank term
// leaves search unset.
func ParseFilter(q FilterQuery, loc *time.Location) (SubmissionFilter, []FilterWarning) {
	if loc == nil {
		loc = time.UTC
	}
	var (
		f        SubmissionFilter
		warnings []FilterWarning
	)

	if raw := strings.TrimSpace(q.StartDate); raw != "" {
		if day, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
			f.StartDate = &day
		} else {
			warnings = append(warnings, FilterWarning{Field: FilterFieldStartDate, Value: raw})
		}
	}
	if raw := strings.TrimSpace(q.EndDate); raw != "" {
		if day, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
			end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
			f.EndDate = &end
		} else {
			warnings = append(warnings, FilterWarning{Field: FilterFieldEndDate, Value: raw})
		}
	}

	if strings.TrimSpace(q.Search) != "" {
		f.Search = q.Search
	}

	if raw := strings.TrimSpace(q.Status); raw != "" {
		if status, ok := models.ParseSubmissionStatus(raw); ok {
			f.Status = status
		} else {
			warnings = append(warnings, FilterWarning{Field: FilterFieldStatus, Value: raw})
		}
	}

	return f, warnings
}

// IsZero reports whether no predicate is set.
func (f SubmissionFilter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil && f.Search == "" && f.Status == ""
}

// Match reports whether sub passes every set predicate.
func (f SubmissionFilter) Match(sub models.Submission) bool {
	return f.matchDate(sub) && f.matchSearch(sub) && f.matchStatus(sub)
}

func (f SubmissionFilter) matchDate(sub models.Submission) bool {
	if f.StartDate != nil && sub.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && sub.CreatedAt.After(*f.EndDate) {
		return false
	}
	return true
}

func (f SubmissionFilter) matchSearch(sub models.Submission) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(sub.Name), term) ||
		strings.Contains(strings.ToLower(sub.Contact), term) ||
		strings.Contains(strings.ToLower(sub.Instagram), term)
}

func (f SubmissionFilter) matchStatus(sub models.Submission) bool {
	return f.Status == "" || sub.Status == f.Status
}

// Apply returns the matching records in their original order.
func (f SubmissionFilter) Apply(subs []models.Submission) []models.Submission {
	out := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if f.Match(sub) {
			out = append(out, sub)
		}
	}
	return out
}

// Query renders f back into query parameters, e.g. for export links.
func (f SubmissionFilter) Query(loc *time.Location) FilterQuery {
	if loc == nil {
		loc = time.UTC
	}
	var q FilterQuery
	if f.StartDate != nil {
		q.StartDate = f.StartDate.In(loc).Format(DateLayout)
	}
	if f.EndDate != nil {
		q.EndDate = f.EndDate.In(loc).Format(DateLayout)
	}
	q.Search = f.Search
	q.Status = string(f.Status)
	return q
}
