package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionStatus is the triage state an admin assigns to a lead.
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusApproved  SubmissionStatus = "approved"
	StatusRejected  SubmissionStatus = "rejected"
	StatusContacted SubmissionStatus = "contacted"
)

// SubmissionStatuses lists every status in display order.
var SubmissionStatuses = []SubmissionStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusContacted,
}

var statusLabels = map[SubmissionStatus]string{
	StatusPending:   "В ожидании",
	StatusApproved:  "Одобрено",
	StatusRejected:  "Отклонено",
	StatusContacted: "Связались",
}

var statusColors = map[SubmissionStatus]string{
	StatusPending:   "yellow",
	StatusApproved:  "green",
	StatusRejected:  "red",
	StatusContacted: "blue",
}

var statusAliases = buildStatusAliases()

func buildStatusAliases() map[string]SubmissionStatus {
	aliases := make(map[string]SubmissionStatus, len(statusLabels)*2)
	for status, label := range statusLabels {
		aliases[normalizeStatus(string(status))] = status
		aliases[normalizeStatus(label)] = status
	}
	return aliases
}

func normalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseSubmissionStatus resolves a status code or its display label.
func ParseSubmissionStatus(raw string) (SubmissionStatus, bool) {
	status, ok := statusAliases[normalizeStatus(raw)]
	return status, ok
}

// Valid reports whether s is one of the four known statuses.
func (s SubmissionStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the localized display label; unknown values render as-is.
func (s SubmissionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the colour class used by every dashboard view.
func (s SubmissionStatus) Color() string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "gray"
}

// Submission represents the submissions table.
type Submission struct {
	ID           string           `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name         string           `gorm:"column:name;not null" json:"name"`
	Contact      string           `gorm:"column:contact;not null" json:"contact"`
	Instagram    string           `gorm:"column:instagram;not null" json:"instagram"` // monthly income, free text
	Expectations string           `gorm:"column:expectations;type:text;not null" json:"expectations"`
	Status       SubmissionStatus `gorm:"column:status;type:varchar(16);not null;default:'pending';index" json:"status"`
	Notes        string           `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt    time.Time        `gorm:"column:created_at;precision:6;index" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;precision:6" json:"updated_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

// BeforeCreate assigns the id and the initial status.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	return nil
}

// StatusLabel is a template helper.
func (s Submission) StatusLabel() string {
	return s.Status.Label()
}

// StatusColor is a template helper.
func (s Submission) StatusColor() string {
	return s.Status.Color()
}
