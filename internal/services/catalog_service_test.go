package services

import (
	"testing"

	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func itemWith(brand, model string, price float64) models.Item {
	return models.Item{Brand: brand, Model: model, PricePerHour: price}
}

func vehicleWith(typ, brand string, price float64) models.Vehicle {
	return models.Vehicle{Type: typ, Brand: brand, Model: "X", PricePerHour: price}
}

func TestCatalogListItemsEnvelope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT (.+) FROM items").
		WillReturnRows(itemRows(1, 9, 100))

	svc := CatalogService{
		ItemRepo:    repositories.ItemRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	out, err := svc.ListItems(2, 12)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if out.CurrentPage != 2 {
		t.Fatalf("unexpected currentPage: %d", out.CurrentPage)
	}
	if out.TotalItems != 25 {
		t.Fatalf("unexpected totalItems: %d", out.TotalItems)
	}
	// ceil(25/12) = 3
	if out.TotalPages != 3 {
		t.Fatalf("unexpected totalPages: %d", out.TotalPages)
	}
	if len(out.Items) != 1 {
		t.Fatalf("unexpected page size: %d", len(out.Items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogListDefaultsPageAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM items").
		WithArgs(12, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "brand", "model", "year", "price_per_hour", "description",
			"image_url", "status", "created_by", "created_at", "updated_at",
		}))

	svc := CatalogService{
		ItemRepo: repositories.ItemRepository{DB: db},
		DB:       db,
	}

	out, err := svc.ListItems(0, -3)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if out.CurrentPage != 1 {
		t.Fatalf("page not defaulted: %d", out.CurrentPage)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogDeleteItemBlockedByBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE item_id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	svc := CatalogService{
		ItemRepo:    repositories.ItemRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	err = svc.DeleteItem(5)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogDeleteItemWithoutBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE item_id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM items").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := CatalogService{
		ItemRepo:    repositories.ItemRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}

	if err := svc.DeleteItem(5); err != nil {
		t.Fatalf("DeleteItem returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogCreateItemValidation(t *testing.T) {
	svc := CatalogService{}
	_, err := svc.CreateItem(itemWith("", "EOS R5", 100))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty brand, got %v", err)
	}
	_, err = svc.CreateItem(itemWith("Canon", "EOS R5", 0))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero price, got %v", err)
	}
}

func TestCatalogCreateVehicleValidatesType(t *testing.T) {
	svc := CatalogService{}
	_, err := svc.CreateVehicle(vehicleWith("plane", "Cessna", 500))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}
