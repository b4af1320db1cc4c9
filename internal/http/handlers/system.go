package handlers

import (
	"net/http"
	"sync"

	intconfig "prorental/internal/config"
	"prorental/internal/session"

	"github.com/gin-gonic/gin"
)

var (
	setupMu  sync.RWMutex
	router   *gin.Engine
	env      intconfig.Env
	sessions session.Store
)

// Configure stores the shared runtime wiring the package-level handlers need.
func Configure(e intconfig.Env, s session.Store) {
	setupMu.Lock()
	defer setupMu.Unlock()
	env = e
	sessions = s
}

func runtimeEnv() intconfig.Env {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return env
}

func sessionStore() session.Store {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return sessions
}

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	setupMu.Lock()
	defer setupMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backend golang berjalan"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung"})
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "users_in_db": count})
}

func Routes(c *gin.Context) {
	setupMu.RLock()
	r := router
	setupMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
