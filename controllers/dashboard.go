package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"instabarakat-leads/models"
	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

// Dashboard views selected with ?view=.
const (
	viewList   = "list"
	viewDetail = "detail"
	viewEdit   = "edit"
)

// DashboardController is the admin review dashboard.
type DashboardController struct {
	submissions *services.SubmissionService
	product     string
	loc         *time.Location
	now         func() time.Time
}

func NewDashboardController(submissions *services.SubmissionService, product string, loc *time.Location) *DashboardController {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardController{submissions: submissions, product: product, loc: loc, now: time.Now}
}

func (dc *DashboardController) basePage() gin.H {
	return gin.H{
		"Title":       "Admin Panel",
		"View":        viewList,
		"ListURL":     dashboardPath,
		"Stats":       services.SubmissionStats{},
		"Filter":      services.FilterQuery{},
		"Submissions": []models.Submission{},
	}
}

// Index loads every record, applies the filter from the query string and
// renders the list, detail or edit view.
func (dc *DashboardController) Index(c *gin.Context) {
	var q services.FilterQuery
	_ = c.ShouldBindQuery(&q)
	filter, warnings := services.ParseFilter(q, dc.loc)

	page := dc.basePage()
	page["Filter"] = filter.Query(dc.loc)
	page["Warnings"] = localizeWarnings(warnings)
	page["ExportURL"] = exportURL(dashboardPath+"/export.csv", filter.Query(dc.loc))
	page["Flash"] = flashMessages[c.Query("flash")]

	review, err := dc.submissions.Review(c.Request.Context(), filter)
	if err != nil {
		page["Error"] = msgLoadFailed
		page["EmptyMessage"] = msgEmptyStore
		c.HTML(http.StatusBadGateway, "dashboard.tmpl", page)
		return
	}

	page["Stats"] = review.Stats
	page["Submissions"] = review.Filtered
	if len(review.All) == 0 {
		page["EmptyMessage"] = msgEmptyStore
	} else {
		page["EmptyMessage"] = msgEmptyFiltered
	}

	view := c.DefaultQuery("view", viewList)
	if view == viewDetail || view == viewEdit {
		if selected := findSubmission(review.All, c.Query("id")); selected != nil {
			page["View"] = view
			page["Selected"] = selected
		} else {
			page["Error"] = msgNotFound
		}
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", page)
}

// UpdateStatus saves the edit view. On failure the edit view stays open with
// the admin's input.
func (dc *DashboardController) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req services.StatusUpdate
	if err := c.ShouldBind(&req); err != nil {
		dc.renderEdit(c, http.StatusBadRequest, id, req, msgInvalidStatus)
		return
	}

	err := dc.submissions.UpdateStatus(c.Request.Context(), id, req)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, dashboardPath+"?flash=updated")
	case errors.Is(err, services.ErrInvalidStatus):
		dc.renderEdit(c, http.StatusBadRequest, id, req, msgInvalidStatus)
	case errors.Is(err, services.ErrSubmissionNotFound):
		dc.renderEdit(c, http.StatusNotFound, id, req, msgNotFound)
	default:
		dc.renderEdit(c, http.StatusBadGateway, id, req, msgUpdateFailed)
	}
}

// renderEdit reopens the edit view with the admin's input. When the record
// cannot be reloaded the form is rebuilt from the posted values alone.
func (dc *DashboardController) renderEdit(c *gin.Context, status int, id string, req services.StatusUpdate, errMsg string) {
	page := dc.basePage()
	page["Error"] = errMsg
	page["EmptyMessage"] = msgEmptyStore
	page["View"] = viewEdit

	sub, err := dc.submissions.Find(c.Request.Context(), id)
	if err != nil {
		sub = &models.Submission{ID: id}
	}
	if parsed, ok := models.ParseSubmissionStatus(req.Status); ok {
		sub.Status = parsed
	}
	if req.Notes != nil {
		sub.Notes = *req.Notes
	}
	page["Selected"] = sub
	c.HTML(status, "dashboard.tmpl", page)
}

// Delete asks for confirmation first; confirm=yes performs the delete and
// returns to the list with any detail view closed.
func (dc *DashboardController) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if c.PostForm("confirm") != "yes" {
		sub, err := dc.submissions.Find(ctx, id)
		if err != nil {
			msg := msgLoadFailed
			status := http.StatusBadGateway
			if errors.Is(err, services.ErrSubmissionNotFound) {
				msg, status = msgNotFound, http.StatusNotFound
			}
			c.HTML(status, "confirm_delete.tmpl", gin.H{"Title": "Admin Panel", "Error": msg})
			return
		}
		c.HTML(http.StatusOK, "confirm_delete.tmpl", gin.H{
			"Title":    "Admin Panel",
			"Question": msgConfirmDelete,
			"Selected": sub,
		})
		return
	}

	if err := dc.submissions.Delete(ctx, id); err != nil {
		status := http.StatusBadGateway
		msg := msgDeleteFailed
		if errors.Is(err, services.ErrSubmissionNotFound) {
			status, msg = http.StatusNotFound, msgNotFound
		}
		c.HTML(status, "confirm_delete.tmpl", gin.H{"Title": "Admin Panel", "Error": msg})
		return
	}

	c.Redirect(http.StatusSeeOther, dashboardPath+"?flash=deleted")
}

// Export downloads the currently filtered set as CSV.
func (dc *DashboardController) Export(c *gin.Context) {
	var q services.FilterQuery
	_ = c.ShouldBindQuery(&q)
	filter, _ := services.ParseFilter(q, dc.loc)

	review, err := dc.submissions.Review(c.Request.Context(), filter)
	if err != nil {
		c.String(http.StatusBadGateway, msgLoadFailed)
		return
	}
	writeCSVExport(c, review.Filtered, dc.product, dc.loc, dc.now())
}

func writeCSVExport(c *gin.Context, subs []models.Submission, product string, loc *time.Location, now time.Time) {
	var buf bytes.Buffer
	if err := services.WriteSubmissionsCSV(&buf, subs, loc); err != nil {
		log.Printf("Error exporting submissions: %v", err)
		c.String(http.StatusInternalServerError, msgExportFailed)
		return
	}

	filename := services.ExportFilename(product, now.In(loc))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportURL(path string, q services.FilterQuery) string {
	values := url.Values{}
	if q.StartDate != "" {
		values.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		values.Set("end_date", q.EndDate)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func findSubmission(subs []models.Submission, id string) *models.Submission {
	if id == "" {
		return nil
	}
	for i := range subs {
		if subs[i].ID == id {
			return &subs[i]
		}
	}
	return nil
}
