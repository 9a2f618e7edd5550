package services

import "instabarakat-leads/models"

// SubmissionStats are the dashboard counters.
type SubmissionStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Contacted int `json:"contacted"`
	Filtered  int `json:"filtered"`
}

// ComputeStats counts statuses over the full set and sizes the filtered set.
func ComputeStats(all, filtered []models.Submission) SubmissionStats {
	stats := SubmissionStats{Total: len(all), Filtered: len(filtered)}
	for _, sub := range all {
		switch sub.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		case models.StatusContacted:
			stats.Contacted++
		}
	}
	return stats
}
