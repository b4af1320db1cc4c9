package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"prorental/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestItemUpdatePatchesOnlyPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	brand := "Canon"
	price := 120.0
	mock.ExpectExec("UPDATE items SET brand=\\?, price_per_hour=\\? WHERE id=\\?").
		WithArgs("Canon", 120.0, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ItemRepository{DB: db}
	if err := repo.Update(5, models.ItemUpdate{Brand: &brand, PricePerHour: &price}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestItemUpdateEmptyPatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ItemRepository{DB: db}
	if err := repo.Update(5, models.ItemUpdate{}); err != nil {
		t.Fatalf("empty patch should be a no-op: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries ran: %v", err)
	}
}

func TestItemUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	brand := "Canon"
	mock.ExpectExec("UPDATE items SET brand=\\? WHERE id=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := ItemRepository{DB: db}
	err = repo.Update(404, models.ItemUpdate{Brand: &brand})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestItemUpdateSameValueIsNotMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	brand := "Canon"
	// MySQL reports zero affected rows when the value did not change
	mock.ExpectExec("UPDATE items SET brand=\\? WHERE id=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := ItemRepository{DB: db}
	if err := repo.Update(5, models.ItemUpdate{Brand: &brand}); err != nil {
		t.Fatalf("same-value update must not error: %v", err)
	}
}
