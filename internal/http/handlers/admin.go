package handlers

import (
	"net/http"

	"prorental/internal/domain"
	"prorental/internal/http/middleware"
	"prorental/internal/services"
	"prorental/internal/session"

	"github.com/gin-gonic/gin"
)

func adminService(c *gin.Context) services.AdminService {
	return services.AdminService{
		Sessions:  sessionStore(),
		RequestID: middleware.GetRequestID(c),
	}
}

func setSessionCookie(c *gin.Context, sid string, maxAge int) {
	secure := runtimeEnv().CookieSecure
	if secure {
		// SameSite=None so the cookie rides along from the separate admin
		// frontend; browsers only accept None together with Secure.
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(session.CookieName, sid, maxAge, "/", "", secure, true)
}

// LoginAdmin handles POST /api/admin/login and opens a session.
func LoginAdmin(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	sid, a, err := adminService(c).Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if domain.IsForbidden(err) {
			RespondError(c, http.StatusUnauthorized, "email atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	setSessionCookie(c, sid, int(session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "login berhasil", "admin": a})
}

// LogoutAdmin handles POST /api/admin/logout.
func LogoutAdmin(c *gin.Context) {
	sid := middleware.GetSessionID(c)
	if err := adminService(c).Logout(c.Request.Context(), sid); err != nil {
		RespondDomainError(c, err)
		return
	}
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logout berhasil"})
}

// GetAdminProfile handles GET /api/admin/profile.
func GetAdminProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "sesi admin tidak ditemukan", nil)
		return
	}
	a, err := adminService(c).GetProfile(p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateAdminProfile handles PUT /api/admin/profile. The session payload is
// refreshed so the new name/email show up immediately.
func UpdateAdminProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "sesi admin tidak ditemukan", nil)
		return
	}
	var in services.AdminProfileUpdateInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := adminService(c).UpdateProfile(c.Request.Context(), middleware.GetSessionID(c), p.ID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profil diperbarui", "admin": a})
}

// ForgotAdminPassword handles POST /api/admin/forgot-password.
func ForgotAdminPassword(c *gin.Context) {
	var in services.ForgotPasswordInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := adminService(c).ForgotPassword(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password berhasil direset"})
}
