package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"prorental/internal/auth"
	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/repositories"
	"prorental/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF kwitansi booking.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
	Loader      func(int64) (receiptData, error)
}

type receiptData struct {
	BookingID      int64
	CreatorID      int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	RentableName   string
	StartDate      time.Time
	EndDate        time.Time
	DurationInDays int
	PickupLocation string
	Status         string
	TotalPrice     float64
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// GenerateReceipt renders the booking receipt for its creator or an admin.
func (s DocsService) GenerateReceipt(p auth.Principal, bookingID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, "", domain.InternalError{Err: err}
	}
	if !p.OwnsBooking(data.CreatorID) && !p.IsAdmin() {
		return nil, "", domain.ForbiddenError{Msg: "hanya pembuat booking atau admin yang bisa mengunduh kwitansi"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadReceiptData(bookingID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out receiptData
	d, err := s.bookings().GetDetailByID(bookingID)
	if err != nil {
		return out, err
	}
	out.BookingID = d.ID
	out.StartDate = d.StartDate
	out.EndDate = d.EndDate
	out.DurationInDays = d.DurationInDays
	out.PickupLocation = d.PickupLocation
	out.Status = string(d.Status)
	out.TotalPrice = d.TotalPrice
	out.RentableName = "N/A"
	if d.User != nil {
		out.CreatorID = d.User.ID
		out.CustomerName = d.User.Name
		out.CustomerEmail = d.User.Email
		out.CustomerPhone = d.User.Phone
	}
	switch {
	case d.Item != nil:
		out.RentableName = strings.TrimSpace(d.Item.Brand + " " + d.Item.Model)
	case d.Vehicle != nil:
		out.RentableName = strings.TrimSpace(d.Vehicle.Brand + " " + d.Vehicle.Model)
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Kwitansi Booking", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KWITANSI BOOKING")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Kwitansi    : RCP-%d", d.BookingID),
		fmt.Sprintf("Nama           : %s", safe(d.CustomerName, "-")),
		fmt.Sprintf("Email          : %s", safe(d.CustomerEmail, "-")),
		fmt.Sprintf("No HP          : %s", safe(d.CustomerPhone, "-")),
		fmt.Sprintf("Unit           : %s", safe(d.RentableName, "-")),
		fmt.Sprintf("Mulai          : %s", utils.FormatDate(d.StartDate)),
		fmt.Sprintf("Selesai        : %s", utils.FormatDate(d.EndDate)),
		fmt.Sprintf("Durasi         : %d hari", d.DurationInDays),
		fmt.Sprintf("Lokasi Jemput  : %s", safe(d.PickupLocation, "-")),
		fmt.Sprintf("Status         : %s", safe(d.Status, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(d.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Kwitansi ini dibuat otomatis oleh sistem dan sah tanpa tanda tangan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", d.BookingID, safeFilenamePart(d.CustomerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
