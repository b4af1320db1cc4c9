package handlers

import (
	"net/http"

	"prorental/internal/domain"
	"prorental/internal/http/middleware"
	"prorental/internal/services"

	"github.com/gin-gonic/gin"
)

func userService(c *gin.Context) services.UserService {
	return services.UserService{
		JWTSecret: runtimeEnv().JWTSecret,
		RequestID: middleware.GetRequestID(c),
	}
}

// RegisterUser handles POST /api/users/register.
func RegisterUser(c *gin.Context) {
	var in services.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := userService(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registrasi berhasil", "user": u})
}

// LoginUser handles POST /api/users/login and returns a bearer token.
func LoginUser(c *gin.Context) {
	var in services.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := userService(c).Login(in)
	if err != nil {
		if domain.IsForbidden(err) {
			RespondError(c, http.StatusUnauthorized, "email atau password salah", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetUserProfile handles GET /api/users/profile.
func GetUserProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	u, err := userService(c).GetProfile(p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUserProfile handles PUT /api/users/profile.
func UpdateUserProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	var in services.ProfileUpdateInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := userService(c).UpdateProfile(p.ID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profil diperbarui", "user": u})
}

// ForgotUserPassword handles POST /api/users/forgot-password.
func ForgotUserPassword(c *gin.Context) {
	var in services.ForgotPasswordInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := userService(c).ForgotPassword(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password berhasil direset"})
}
