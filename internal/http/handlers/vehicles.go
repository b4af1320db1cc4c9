package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"prorental/internal/domain/models"
	"prorental/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreateVehicle handles POST /api/vehicles. Accepts JSON, or multipart
// form-data when an image is attached.
func CreateVehicle(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var v models.Vehicle
	if isMultipart(c) {
		v.Type = strings.TrimSpace(c.PostForm("type"))
		v.Brand = strings.TrimSpace(c.PostForm("brand"))
		v.Model = strings.TrimSpace(c.PostForm("model"))
		v.Year, _ = strconv.Atoi(c.PostForm("year"))
		v.PricePerHour, _ = strconv.ParseFloat(c.PostForm("pricePerHour"), 64)
		v.Description = strings.TrimSpace(c.PostForm("description"))
		v.Seat, _ = strconv.Atoi(c.PostForm("seat"))
		v.Door, _ = strconv.Atoi(c.PostForm("door"))
		v.Luggage = strings.TrimSpace(c.PostForm("luggage"))
		v.Transmission = strings.TrimSpace(c.PostForm("transmission"))
		v.Drive = strings.TrimSpace(c.PostForm("drive"))
		v.FuelType = strings.TrimSpace(c.PostForm("fuelType"))
		v.Engine = strings.TrimSpace(c.PostForm("engine"))
		v.Available = c.PostForm("available") != "false"
		if url, ok := storeImage(c); ok {
			v.ImageURL = url
		} else if c.IsAborted() {
			return
		}
	} else if !BindJSONOrError(c, &v) {
		return
	}
	v.CreatedBy = p.ID

	created, err := catalogService(c).CreateVehicle(v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetVehicles handles GET /api/vehicles?page=&limit=.
func GetVehicles(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 12)
	out, err := catalogService(c).ListVehicles(page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetVehicle handles GET /api/vehicles/:id.
func GetVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	v, err := catalogService(c).GetVehicle(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateVehicle handles PUT /api/vehicles/:id.
func UpdateVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.VehicleUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	v, err := catalogService(c).UpdateVehicle(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVehicle handles DELETE /api/vehicles/:id.
func DeleteVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := catalogService(c).DeleteVehicle(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle dihapus"})
}
