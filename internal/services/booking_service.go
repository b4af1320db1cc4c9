package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"prorental/internal/auth"
	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/observability/metrics"
	"prorental/internal/repositories"
	"prorental/internal/utils"
)

// BookingService owns booking creation, status transitions, and the rule
// binding booking status to catalog availability.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	ItemRepo    repositories.ItemRepository
	VehicleRepo repositories.VehicleRepository
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) items() repositories.ItemRepository {
	if s.ItemRepo.DB != nil {
		return s.ItemRepo
	}
	return repositories.ItemRepository{DB: s.db()}
}

func (s BookingService) vehicles() repositories.VehicleRepository {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepository{DB: s.db()}
}

// CreateBookingInput carries the user-supplied booking request. Exactly one
// of ItemID/VehicleID must be set.
type CreateBookingInput struct {
	ItemID         *int64
	VehicleID      *int64
	StartDate      time.Time
	DurationInDays int
	PickupLocation string
	Notes          string
	Source         string
}

// Create persists a new pending booking against an existing rentable.
// The rentable's availability is deliberately NOT touched here: it changes
// only when the transaction is marked completed.
func (s BookingService) Create(userID int64, in CreateBookingInput) (models.Booking, error) {
	if (in.ItemID == nil) == (in.VehicleID == nil) {
		return models.Booking{}, domain.ValidationError{Msg: "harus menyertakan tepat satu dari item atau vehicle"}
	}
	if in.DurationInDays <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "durationInDays", Msg: "durasi harus lebih dari 0"}
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		return models.Booking{}, domain.ValidationError{Field: "pickupLocation", Msg: "lokasi penjemputan wajib diisi"}
	}
	if in.StartDate.IsZero() {
		return models.Booking{}, domain.ValidationError{Field: "startDate", Msg: "tanggal mulai wajib diisi"}
	}

	var (
		kind         string
		pricePerHour float64
	)
	if in.ItemID != nil {
		item, err := s.items().GetByID(*in.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Booking{}, domain.NotFoundError{Resource: "item", Err: err}
			}
			return models.Booking{}, domain.InternalError{Err: err}
		}
		kind = "item"
		pricePerHour = item.PricePerHour
	} else {
		veh, err := s.vehicles().GetByID(*in.VehicleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Booking{}, domain.NotFoundError{Resource: "vehicle", Err: err}
			}
			return models.Booking{}, domain.InternalError{Err: err}
		}
		kind = "vehicle"
		pricePerHour = veh.PricePerHour
	}

	now := utils.NowUTC()
	booking := models.Booking{
		UserID:         userID,
		ItemID:         in.ItemID,
		VehicleID:      in.VehicleID,
		StartDate:      in.StartDate,
		EndDate:        in.StartDate.AddDate(0, 0, in.DurationInDays),
		DurationInDays: in.DurationInDays,
		// Hourly rate times 24 encodes daily billing on an hourly price
		// field; kept as-is for wire compatibility.
		TotalPrice:     pricePerHour * 24 * float64(in.DurationInDays),
		PickupLocation: utils.TrimOrEmpty(in.PickupLocation),
		Notes:          utils.TrimOrEmpty(in.Notes),
		Status:         models.BookingPending,
		Source:         utils.TrimOrEmpty(in.Source),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := s.bookings().Create(booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	booking.ID = id

	_, rentableID := booking.RentableRef()
	metrics.ObserveBookingCreated(kind, booking.Source)
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%d %s_id=%d user_id=%d", id, kind, rentableID, userID))

	return booking, nil
}

// UpdateStatus runs a lifecycle transition. Both the owner-authorized path
// and the admin path call this one function so the status table can never
// diverge between the two.
//
// Booking write and rentable write share one transaction: a failure on
// either side leaves both records untouched.
func (s BookingService) UpdateStatus(p auth.Principal, bookingID int64, target models.BookingStatus) (models.Booking, error) {
	if !target.IsSettable() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "nilai status tidak valid"}
	}

	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	kind, rentableID := booking.RentableRef()
	if kind == "" {
		return models.Booking{}, domain.InternalError{Msg: "booking tanpa referensi item/vehicle"}
	}

	ownerID, err := s.rentableOwner(kind, rentableID)
	if err != nil {
		return models.Booking{}, err
	}
	if !p.CanManageRentable(ownerID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "hanya pemilik item/vehicle atau admin yang boleh mengubah status booking"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := s.bookings().UpdateStatus(tx, bookingID, target); err != nil {
		_ = tx.Rollback()
		return models.Booking{}, domain.InternalError{Err: err}
	}

	rentableStatus := models.RentableStatusFor(target)
	if kind == "item" {
		err = s.items().UpdateStatus(tx, rentableID, rentableStatus)
	} else {
		err = s.vehicles().UpdateStatus(tx, rentableID, rentableStatus)
	}
	if err != nil {
		_ = tx.Rollback()
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	booking.Status = target
	booking.UpdatedAt = utils.NowUTC()

	metrics.ObserveBookingTransition(string(target))
	utils.LogEvent(s.RequestID, "booking", "update_status", fmt.Sprintf("booking_id=%d status=%s %s_id=%d -> %s", bookingID, target, kind, rentableID, rentableStatus))

	return booking, nil
}

// Delete removes a booking. Only the creator may delete, any status is
// deletable, and the rentable's availability is intentionally left alone:
// deletion is a retraction, not a lifecycle transition.
func (s BookingService) Delete(p auth.Principal, bookingID int64) error {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	if !p.OwnsBooking(booking.UserID) {
		return domain.ForbiddenError{Msg: "hanya pembuat booking yang boleh menghapus"}
	}

	if err := s.bookings().Delete(bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "delete", fmt.Sprintf("booking_id=%d user_id=%d", bookingID, p.ID))
	return nil
}

// GetDetail returns a booking with its referenced documents joined in.
func (s BookingService) GetDetail(bookingID int64) (models.BookingDetail, error) {
	d, err := s.bookings().GetDetailByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	return d, nil
}

// ListForUser returns the caller's own bookings, newest first.
func (s BookingService) ListForUser(userID int64) ([]models.BookingDetail, error) {
	out, err := s.bookings().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListForOwner returns bookings placed against rentables the caller created.
func (s BookingService) ListForOwner(userID int64) ([]models.BookingDetail, error) {
	out, err := s.bookings().ListByRentableOwner(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListAll is the admin view over every booking.
func (s BookingService) ListAll() ([]models.BookingDetail, error) {
	out, err := s.bookings().ListAll()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) rentableOwner(kind string, id int64) (int64, error) {
	if kind == "item" {
		item, err := s.items().GetByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, domain.NotFoundError{Resource: "item", Err: err}
			}
			return 0, domain.InternalError{Err: err}
		}
		return item.CreatedBy, nil
	}
	veh, err := s.vehicles().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	return veh.CreatedBy, nil
}
