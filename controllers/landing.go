package controllers

import (
	"errors"
	"net/http"

	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

// LandingController serves the public landing page and its lead form.
type LandingController struct {
	submissions *services.SubmissionService
	product     string
}

func NewLandingController(submissions *services.SubmissionService, product string) *LandingController {
	return &LandingController{submissions: submissions, product: product}
}

func (lc *LandingController) page(form services.SubmissionInput, errMsg string) gin.H {
	return gin.H{
		"Title":   lc.product,
		"Lang":    "tg",
		"Product": lc.product,
		"Form":    form,
		"Error":   errMsg,
	}
}

// Show renders the landing page with an empty form.
func (lc *LandingController) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.tmpl", lc.page(services.SubmissionInput{}, ""))
}

// Submit stores the lead. On failure the entered values are kept so the
// visitor can retry.
func (lc *LandingController) Submit(c *gin.Context) {
	var form services.SubmissionInput
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "landing.tmpl", lc.page(form, msgFieldsRequired))
		return
	}

	if _, err := lc.submissions.Submit(c.Request.Context(), form); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.HTML(http.StatusBadRequest, "landing.tmpl", lc.page(form, msgFieldsRequired))
			return
		}
		c.HTML(http.StatusBadGateway, "landing.tmpl", lc.page(form, msgSubmitFailed))
		return
	}

	c.HTML(http.StatusOK, "landing_thanks.tmpl", gin.H{
		"Title":         lc.product,
		"Lang":          "tg",
		"Pending":       true,
		"RedirectURL":   "/thanks",
		"RedirectDelay": SubmitConfirmDelay,
	})
}

// Thanks renders the confirmation overlay.
func (lc *LandingController) Thanks(c *gin.Context) {
	c.HTML(http.StatusOK, "landing_thanks.tmpl", gin.H{
		"Title":       lc.product,
		"Lang":        "tg",
		"ThanksTitle": msgThanksTitle,
		"ThanksBody":  msgThanksBody,
	})
}
