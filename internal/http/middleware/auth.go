package middleware

import (
	"net/http"
	"strings"

	"prorental/internal/auth"
	intconfig "prorental/internal/config"
	"prorental/internal/repositories"
	"prorental/internal/session"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// GetPrincipal returns the identity a guard middleware resolved, if any.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func setPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func resolveUser(c *gin.Context, jwtSecret string) (auth.Principal, bool) {
	token := bearerToken(c)
	if token == "" {
		return auth.Principal{}, false
	}
	claims, err := auth.ParseToken(jwtSecret, token)
	if err != nil {
		return auth.Principal{}, false
	}

	repo := repositories.UserRepository{DB: intconfig.DB}
	u, err := repo.GetByID(claims.UserID)
	if err != nil {
		return auth.Principal{}, false
	}
	return auth.Principal{
		Kind:  auth.KindUser,
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, true
}

func resolveAdmin(c *gin.Context, store session.Store) (auth.Principal, string, bool) {
	sid, err := c.Cookie(session.CookieName)
	if err != nil || sid == "" {
		return auth.Principal{}, "", false
	}
	s, err := store.Get(c.Request.Context(), sid)
	if err != nil {
		return auth.Principal{}, "", false
	}
	return auth.Principal{
		Kind:  auth.KindAdmin,
		ID:    s.AdminID,
		Name:  s.Name,
		Email: s.Email,
		Role:  "admin",
	}, sid, true
}

const sessionIDKey = "session_id"

// GetSessionID returns the admin session id resolved by RequireAdmin.
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequireUser guards bearer-token routes.
func RequireUser(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := resolveUser(c, jwtSecret)
		if !ok {
			abortUnauthorized(c, "token tidak valid atau sudah kedaluwarsa")
			return
		}
		setPrincipal(c, p)
		c.Next()
	}
}

// RequireAdmin guards session-cookie routes.
func RequireAdmin(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, sid, ok := resolveAdmin(c, store)
		if !ok {
			abortUnauthorized(c, "sesi admin tidak ditemukan")
			return
		}
		setPrincipal(c, p)
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// RequireAdminRole accepts either identity scheme but only lets admins
// through: session admins, or token users carrying role=admin.
func RequireAdminRole(jwtSecret string, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := resolveUser(c, jwtSecret)
		if !ok {
			var sid string
			if p, sid, ok = resolveAdmin(c, store); ok {
				c.Set(sessionIDKey, sid)
			}
		}
		if !ok {
			abortUnauthorized(c, "butuh login user atau sesi admin")
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "butuh hak akses admin"})
			return
		}
		setPrincipal(c, p)
		c.Next()
	}
}

// RequireUserOrAdmin accepts either identity scheme. The bearer token wins
// when both are present.
func RequireUserOrAdmin(jwtSecret string, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := resolveUser(c, jwtSecret); ok {
			setPrincipal(c, p)
			c.Next()
			return
		}
		if p, sid, ok := resolveAdmin(c, store); ok {
			setPrincipal(c, p)
			c.Set(sessionIDKey, sid)
			c.Next()
			return
		}
		abortUnauthorized(c, "butuh login user atau sesi admin")
	}
}
