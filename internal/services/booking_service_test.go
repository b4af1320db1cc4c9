package services

import (
	"database/sql"
	"testing"
	"time"

	"prorental/internal/auth"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func itemRows(id, createdBy int64, pricePerHour float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "brand", "model", "year", "price_per_hour", "description",
		"image_url", "status", "created_by", "created_at", "updated_at",
	}).AddRow(id, "Canon", "EOS R5", 2023, pricePerHour, "", "", "Available", createdBy, now, now)
}

func bookingRows(id, userID int64, itemID any, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "item_id", "vehicle_id", "start_date", "end_date",
		"duration_in_days", "total_price", "pickup_location", "notes",
		"status", "source", "created_at", "updated_at",
	}).AddRow(id, userID, itemID, nil, now, now.AddDate(0, 0, 3), 3, 7200.0, "Jakarta", nil, status, nil, now, now)
}

func TestBookingCreateTotalPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	itemID := int64(5)
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, 9, 100))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b, err := svc.Create(7, CreateBookingInput{
		ItemID:         &itemID,
		StartDate:      start,
		DurationInDays: 3,
		PickupLocation: "Jakarta",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 100/hour * 24 * 3 days
	if b.TotalPrice != 7200 {
		t.Fatalf("unexpected total price: %v", b.TotalPrice)
	}
	if !b.EndDate.Equal(start.AddDate(0, 0, 3)) {
		t.Fatalf("unexpected end date: %v", b.EndDate)
	}
	if b.Status != models.BookingPending {
		t.Fatalf("new booking should be pending, got %s", b.Status)
	}
	if b.ID != 42 {
		t.Fatalf("unexpected id: %d", b.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRequiresExactlyOneRentable(t *testing.T) {
	svc := BookingService{}
	itemID, vehicleID := int64(1), int64(2)
	start := time.Now()

	_, err := svc.Create(1, CreateBookingInput{
		StartDate: start, DurationInDays: 1, PickupLocation: "X",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error with neither ref, got %v", err)
	}

	_, err = svc.Create(1, CreateBookingInput{
		ItemID: &itemID, VehicleID: &vehicleID,
		StartDate: start, DurationInDays: 1, PickupLocation: "X",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error with both refs, got %v", err)
	}
}

func TestBookingCreateRejectsNonPositiveDuration(t *testing.T) {
	svc := BookingService{}
	itemID := int64(5)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for _, days := range []int{0, -2} {
		_, err := svc.Create(7, CreateBookingInput{
			ItemID:         &itemID,
			StartDate:      start,
			DurationInDays: days,
			PickupLocation: "Jakarta",
		})
		if !domain.IsValidation(err) {
			t.Fatalf("duration %d: expected validation error, got %v", days, err)
		}
	}
}

func TestBookingCreateMissingItemNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	itemID := int64(404)
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnError(sql.ErrNoRows)

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}
	_, err = svc.Create(7, CreateBookingInput{
		ItemID:         &itemID,
		StartDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DurationInDays: 2,
		PickupLocation: "Jakarta",
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCompletedMarksItemRented(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	itemID := int64(5)
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, 7, itemID, "confirmed"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, 9, 100))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("completed", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE items SET status").
		WithArgs("Rented", itemID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	owner := auth.Principal{Kind: auth.KindUser, ID: 9}
	b, err := svc.UpdateStatus(owner, 42, models.BookingCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if b.Status != models.BookingCompleted {
		t.Fatalf("status not updated: %s", b.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelledReleasesItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	itemID := int64(5)
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, 7, itemID, "pending"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, 9, 100))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("cancelled", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE items SET status").
		WithArgs("Available", itemID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	admin := auth.Principal{Kind: auth.KindAdmin, ID: 1}
	if _, err := svc.UpdateStatus(admin, 42, models.BookingCancelled); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingStatusRejectsPendingTarget(t *testing.T) {
	svc := BookingService{}
	_, err := svc.UpdateStatus(auth.Principal{Kind: auth.KindAdmin}, 1, models.BookingPending)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.UpdateStatus(auth.Principal{Kind: auth.KindAdmin}, 1, models.BookingStatus("archived"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestBookingStatusStrangerForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	itemID := int64(5)
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, 7, itemID, "pending"))
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, 9, 100))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	// user 99 owns neither the booking nor the item
	stranger := auth.Principal{Kind: auth.KindUser, ID: 99}
	_, err = svc.UpdateStatus(stranger, 42, models.BookingConfirmed)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	// no transaction must have been opened
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDeleteCreatorOnlyNoRentableWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// stranger (even an admin) cannot delete
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, 7, int64(5), "completed"))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		ItemRepo:    repositories.ItemRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}
	admin := auth.Principal{Kind: auth.KindAdmin, ID: 1}
	if err := svc.Delete(admin, 42); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-creator, got %v", err)
	}

	// creator deletes; only the bookings row is touched, the item keeps
	// whatever status it had
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, 7, int64(5), "completed"))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	creator := auth.Principal{Kind: auth.KindUser, ID: 7}
	if err := svc.Delete(creator, 42); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
