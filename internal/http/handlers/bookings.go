package handlers

import (
	"net/http"
	"strings"

	"prorental/internal/domain/models"
	"prorental/internal/http/middleware"
	"prorental/internal/services"
	"prorental/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type createBookingPayload struct {
	ItemID         *int64 `json:"item"`
	VehicleID      *int64 `json:"vehicle"`
	StartDate      string `json:"startDate"`
	DurationInDays int    `json:"durationInDays"`
	PickupLocation string `json:"pickupLocation"`
	Notes          string `json:"notes"`
	Source         string `json:"source"`
}

// CreateBooking handles POST /api/bookings. The booking starts pending and
// the catalog availability is left alone until a completion transition.
func CreateBooking(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	var in createBookingPayload
	if !BindJSONOrError(c, &in) {
		return
	}

	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		start, err = utils.ParseDateTime(in.StartDate)
	}
	if err != nil {
		RespondError(c, http.StatusBadRequest, "startDate tidak valid, gunakan format YYYY-MM-DD", err)
		return
	}

	b, err := bookingService(c).Create(p.ID, services.CreateBookingInput{
		ItemID:         in.ItemID,
		VehicleID:      in.VehicleID,
		StartDate:      start,
		DurationInDays: in.DurationInDays,
		PickupLocation: in.PickupLocation,
		Notes:          in.Notes,
		Source:         in.Source,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetMyBookings handles GET /api/bookings/my-bookings: bookings the caller created.
func GetMyBookings(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	out, err := bookingService(c).ListForUser(p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMyItemBookings handles GET /api/bookings/my-items: bookings against
// rentables the caller owns.
func GetMyItemBookings(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	out, err := bookingService(c).ListForOwner(p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBooking handles GET /api/bookings/:id.
func GetBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := bookingService(c).GetDetail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteBooking handles DELETE /api/bookings/:id. Creator only; the catalog
// keeps whatever availability it had.
func DeleteBooking(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := bookingService(c).Delete(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus"})
}

type statusPayload struct {
	Status string `json:"status"`
}

func updateBookingStatus(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in statusPayload
	if !BindJSONOrError(c, &in) {
		return
	}
	target := models.BookingStatus(strings.ToLower(strings.TrimSpace(in.Status)))

	b, err := bookingService(c).UpdateStatus(p, id, target)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status booking diperbarui", "booking": b})
}

// UpdateBookingStatus handles PUT /api/bookings/:id/status for owners.
func UpdateBookingStatus(c *gin.Context) {
	updateBookingStatus(c)
}

// AdminUpdateBookingStatus handles PUT /api/bookings/admin-status/:id. Same
// transition rules, reached through the session-cookie guard.
func AdminUpdateBookingStatus(c *gin.Context) {
	updateBookingStatus(c)
}

// GetAllBookings handles GET /api/bookings/admin-all.
func GetAllBookings(c *gin.Context) {
	out, err := bookingService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetAdminStats handles GET /api/bookings/admin-stats.
func GetAdminStats(c *gin.Context) {
	svc := services.StatsService{}
	out, err := svc.Dashboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBookingReceiptPDF handles GET /api/bookings/:id/receipt (inline PDF).
func GetBookingReceiptPDF(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "butuh login", nil)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateReceipt(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
