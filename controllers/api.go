package controllers

import (
	"errors"
	"net/http"
	"time"

	"instabarakat-leads/models"
	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

// SubmissionAPIController exposes the lead flow as JSON.
type SubmissionAPIController struct {
	submissions *services.SubmissionService
	product     string
	loc         *time.Location
	now         func() time.Time
}

func NewSubmissionAPIController(submissions *services.SubmissionService, product string, loc *time.Location) *SubmissionAPIController {
	if loc == nil {
		loc = time.UTC
	}
	return &SubmissionAPIController{submissions: submissions, product: product, loc: loc, now: time.Now}
}

// Create handles the public lead form.
func (ac *SubmissionAPIController) Create(c *gin.Context) {
	var req services.SubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := ac.submissions.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msgSubmitFailed})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": sub,
	})
}

// List returns the filtered set plus counters.
func (ac *SubmissionAPIController) List(c *gin.Context) {
	var q services.FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, warnings := services.ParseFilter(q, ac.loc)

	review, err := ac.submissions.Review(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": msgLoadFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": review.Filtered,
		"stats":       review.Stats,
		"filters":     filter.Query(ac.loc),
		"warnings":    localizeWarnings(warnings),
		"labels":      statusLabels(),
	})
}

// Get returns one record.
func (ac *SubmissionAPIController) Get(c *gin.Context) {
	sub, err := ac.submissions.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, msgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submission": sub})
}

// Update sets status and notes.
func (ac *SubmissionAPIController) Update(c *gin.Context) {
	var req services.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.submissions.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		respondStoreError(c, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgUpdated})
}

// Delete removes one record.
func (ac *SubmissionAPIController) Delete(c *gin.Context) {
	if err := ac.submissions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, msgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}

// Export downloads the filtered set as CSV.
func (ac *SubmissionAPIController) Export(c *gin.Context) {
	var q services.FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter, _ := services.ParseFilter(q, ac.loc)

	review, err := ac.submissions.Review(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": msgLoadFailed})
		return
	}
	writeCSVExport(c, review.Filtered, ac.product, ac.loc, ac.now())
}

func respondStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidStatus})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}

func statusLabels() map[models.SubmissionStatus]string {
	labels := make(map[models.SubmissionStatus]string, len(models.SubmissionStatuses))
	for _, status := range models.SubmissionStatuses {
		labels[status] = status.Label()
	}
	return labels
}
