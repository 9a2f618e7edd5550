package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"instabarakat-leads/models"
)

// ExportTimeLayout formats timestamps in the CSV export.
const ExportTimeLayout = "2006-01-02 15:04:05"

// ExportHeader is the fixed CSV column order.
var ExportHeader = []string{
	"Name",
	"Contact",
	"Instagram",
	"Expectations",
	"Status",
	"Notes",
	"Created Date",
	"Updated Date",
}

// ExportFilename returns <product>-submissions-<YYYY-MM-DD>.csv.
func ExportFilename(product string, now time.Time) string {
	return fmt.Sprintf("%s-submissions-%s.csv", product, now.Format(DateLayout))
}

// WriteSubmissionsCSV writes the header and one line per record. Every field
// is quoted and lines are joined by "\n" without a trailing newline, so N
// records yield N+1 lines.
func WriteSubmissionsCSV(w io.Writer, subs []models.Submission, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	lines := make([]string, 0, len(subs)+1)
	lines = append(lines, strings.Join(ExportHeader, ","))
	for _, sub := range subs {
		lines = append(lines, csvLine(
			sub.Name,
			sub.Contact,
			sub.Instagram,
			sub.Expectations,
			string(sub.Status),
			sub.Notes,
			formatExportTime(sub.CreatedAt, loc),
			formatExportTime(sub.UpdatedAt, loc),
		))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func csvLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func formatExportTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(ExportTimeLayout)
}
