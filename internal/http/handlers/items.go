package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"prorental/internal/domain/models"
	"prorental/internal/http/middleware"
	"prorental/internal/services"

	"github.com/gin-gonic/gin"
)

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{RequestID: middleware.GetRequestID(c)}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data")
}

// CreateItem handles POST /api/items. Accepts JSON, or multipart form-data
// when an image is attached.
func CreateItem(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var it models.Item
	if isMultipart(c) {
		it.Brand = strings.TrimSpace(c.PostForm("brand"))
		it.Model = strings.TrimSpace(c.PostForm("model"))
		it.Year, _ = strconv.Atoi(c.PostForm("year"))
		it.PricePerHour, _ = strconv.ParseFloat(c.PostForm("pricePerHour"), 64)
		it.Description = strings.TrimSpace(c.PostForm("description"))
		if url, ok := storeImage(c); ok {
			it.ImageURL = url
		} else if c.IsAborted() {
			return
		}
	} else if !BindJSONOrError(c, &it) {
		return
	}
	it.CreatedBy = p.ID

	created, err := catalogService(c).CreateItem(it)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetItems handles GET /api/items?page=&limit= with the paging envelope.
func GetItems(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 12)
	out, err := catalogService(c).ListItems(page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMyItems handles GET /api/items/my-items: listings the caller created.
func GetMyItems(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	out, err := catalogService(c).ListItemsByOwner(p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetItem handles GET /api/items/:id.
func GetItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := catalogService(c).GetItem(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// UpdateItem handles PUT /api/items/:id with key-presence patch semantics.
func UpdateItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.ItemUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	it, err := catalogService(c).UpdateItem(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// DeleteItem handles DELETE /api/items/:id. Referenced items stay.
func DeleteItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := catalogService(c).DeleteItem(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item dihapus"})
}
