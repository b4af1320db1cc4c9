package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// storeImage saves the optional "image" form file and returns its public URL.
// On a bad upload it writes the error response and aborts the request.
func storeImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		// no file attached is fine
		return "", false
	}
	if fh.Size > maxUploadBytes {
		c.Abort()
		RespondError(c, http.StatusBadRequest, "file terlalu besar, maksimal 5MB", nil)
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		c.Abort()
		RespondError(c, http.StatusBadRequest, "tipe file tidak didukung", nil)
		return "", false
	}

	dir := runtimeEnv().UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.Abort()
		RespondError(c, http.StatusInternalServerError, "gagal menyiapkan folder upload", err)
		return "", false
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		c.Abort()
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan file", err)
		return "", false
	}
	return "/uploads/" + name, true
}

// UploadImage handles POST /api/uploads for standalone image uploads.
func UploadImage(c *gin.Context) {
	url, ok := storeImage(c)
	if c.IsAborted() {
		return
	}
	if !ok {
		RespondError(c, http.StatusBadRequest, "field image wajib diisi", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
