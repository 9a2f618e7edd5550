package controllers

import (
	"log"
	"net/http"
	"time"

	"instabarakat-leads/middleware"
	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

const dashboardPath = "/admin/dashboard"

type LoginRequest struct {
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

// AdminAuthController is the access gate.
type AdminAuthController struct {
	auth          *services.AdminAuthService
	secureCookies bool
}

func NewAdminAuthController(auth *services.AdminAuthService, secureCookies bool) *AdminAuthController {
	return &AdminAuthController{auth: auth, secureCookies: secureCookies}
}

// ShowLogin renders the gate, or skips it when a session is already valid.
func (ac *AdminAuthController) ShowLogin(c *gin.Context) {
	if _, err := ac.auth.ValidateSession(middleware.SessionToken(c)); err == nil {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "admin_login.tmpl", gin.H{"Title": "Admin Panel"})
}

// Login compares the entered password and on success sets the session cookie
// and forwards to the dashboard after a short loading pause.
func (ac *AdminAuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusUnauthorized, "admin_login.tmpl", gin.H{"Title": "Admin Panel", "Error": msgWrongPassword})
		return
	}

	token, expiresAt, err := ac.auth.Login(req.Password)
	if err != nil {
		log.Printf("Admin login rejected from %s", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "admin_login.tmpl", gin.H{"Title": "Admin Panel", "Error": msgWrongPassword})
		return
	}

	ac.setSessionCookie(c, token, expiresAt)
	log.Printf("Admin login from %s", c.ClientIP())
	c.HTML(http.StatusOK, "admin_login.tmpl", gin.H{
		"Title":         "Admin Panel",
		"Redirecting":   true,
		"RedirectURL":   dashboardPath,
		"RedirectDelay": GateRedirectDelay,
	})
}

// Logout clears the session and returns to the gate.
func (ac *AdminAuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookies, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// APILogin is Login for JSON clients; the token goes in the body.
func (ac *AdminAuthController) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := ac.auth.Login(req.Password)
	if err != nil {
		log.Printf("Admin API login rejected from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgWrongPassword})
		return
	}

	ac.setSessionCookie(c, token, expiresAt)
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   "Login successful",
	})
}

func (ac *AdminAuthController) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ac.secureCookies, true)
}
