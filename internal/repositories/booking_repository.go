package repositories

import (
	"database/sql"
	"time"

	intconfig "prorental/internal/config"
	"prorental/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(user_id, item_id, vehicle_id, start_date, end_date, duration_in_days,
			 total_price, pickup_location, notes, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.UserID,
		b.ItemID,
		b.VehicleID,
		b.StartDate,
		b.EndDate,
		b.DurationInDays,
		b.TotalPrice,
		b.PickupLocation,
		nullIfEmpty(b.Notes),
		string(b.Status),
		nullIfEmpty(b.Source),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var (
		b         models.Booking
		itemID    sql.NullInt64
		vehicleID sql.NullInt64
		notes     sql.NullString
		source    sql.NullString
		status    string
	)
	err := r.db().QueryRow(`
		SELECT id, user_id, item_id, vehicle_id, start_date, end_date, duration_in_days,
		       total_price, pickup_location, notes, status, source, created_at, updated_at
		FROM bookings WHERE id=?
	`, id).Scan(
		&b.ID,
		&b.UserID,
		&itemID,
		&vehicleID,
		&b.StartDate,
		&b.EndDate,
		&b.DurationInDays,
		&b.TotalPrice,
		&b.PickupLocation,
		&notes,
		&status,
		&source,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	if itemID.Valid {
		b.ItemID = &itemID.Int64
	}
	if vehicleID.Valid {
		b.VehicleID = &vehicleID.Int64
	}
	b.Notes = notes.String
	b.Source = source.String
	b.Status = models.BookingStatus(status)
	return b, nil
}

const bookingDetailSelect = `
	SELECT
		b.id, b.start_date, b.end_date, b.duration_in_days, b.total_price,
		b.pickup_location, COALESCE(b.notes,''), b.status, COALESCE(b.source,''),
		b.created_at, b.updated_at,
		u.id, COALESCE(u.name,''), COALESCE(u.email,''), COALESCE(u.phone_number,''),
		i.id, i.brand, i.model, i.year, i.price_per_hour, i.image_url, i.status, i.created_by,
		v.id, v.type, v.brand, v.model, v.year, v.price_per_hour, v.image_url, v.status, v.created_by
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN items i ON i.id = b.item_id
	LEFT JOIN vehicles v ON v.id = b.vehicle_id`

func scanBookingDetail(row interface{ Scan(dest ...any) error }) (models.BookingDetail, error) {
	var (
		d      models.BookingDetail
		status string
		user   models.UserSummary

		itemID    sql.NullInt64
		itemBrand sql.NullString
		itemModel sql.NullString
		itemYear  sql.NullInt64
		itemPrice sql.NullFloat64
		itemImage sql.NullString
		itemStat  sql.NullString
		itemOwner sql.NullInt64

		vehID    sql.NullInt64
		vehType  sql.NullString
		vehBrand sql.NullString
		vehModel sql.NullString
		vehYear  sql.NullInt64
		vehPrice sql.NullFloat64
		vehImage sql.NullString
		vehStat  sql.NullString
		vehOwner sql.NullInt64
	)

	err := row.Scan(
		&d.ID, &d.StartDate, &d.EndDate, &d.DurationInDays, &d.TotalPrice,
		&d.PickupLocation, &d.Notes, &status, &d.Source,
		&d.CreatedAt, &d.UpdatedAt,
		&user.ID, &user.Name, &user.Email, &user.Phone,
		&itemID, &itemBrand, &itemModel, &itemYear, &itemPrice, &itemImage, &itemStat, &itemOwner,
		&vehID, &vehType, &vehBrand, &vehModel, &vehYear, &vehPrice, &vehImage, &vehStat, &vehOwner,
	)
	if err != nil {
		return models.BookingDetail{}, err
	}

	d.Status = models.BookingStatus(status)
	d.User = &user

	if itemID.Valid {
		d.Item = &models.ItemSummary{
			ID:           itemID.Int64,
			Brand:        itemBrand.String,
			Model:        itemModel.String,
			Year:         int(itemYear.Int64),
			PricePerHour: itemPrice.Float64,
			ImageURL:     itemImage.String,
			Status:       itemStat.String,
			CreatedBy:    itemOwner.Int64,
		}
	}
	if vehID.Valid {
		d.Vehicle = &models.VehicleSummary{
			ID:           vehID.Int64,
			Type:         vehType.String,
			Brand:        vehBrand.String,
			Model:        vehModel.String,
			Year:         int(vehYear.Int64),
			PricePerHour: vehPrice.Float64,
			ImageURL:     vehImage.String,
			Status:       vehStat.String,
			CreatedBy:    vehOwner.Int64,
		}
	}
	return d, nil
}

func (r BookingRepository) GetDetailByID(id int64) (models.BookingDetail, error) {
	row := r.db().QueryRow(bookingDetailSelect+` WHERE b.id=?`, id)
	return scanBookingDetail(row)
}

func (r BookingRepository) listDetails(where string, args ...any) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(bookingDetailSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListByUser(userID int64) ([]models.BookingDetail, error) {
	return r.listDetails(` WHERE b.user_id=? ORDER BY b.created_at DESC, b.id DESC`, userID)
}

func (r BookingRepository) ListAll() ([]models.BookingDetail, error) {
	return r.listDetails(` ORDER BY b.created_at DESC, b.id DESC`)
}

// ListByRentableOwner returns bookings placed against rentables the given
// user created ("bookings for my items").
func (r BookingRepository) ListByRentableOwner(ownerID int64) ([]models.BookingDetail, error) {
	return r.listDetails(` WHERE i.created_by=? OR v.created_by=? ORDER BY b.created_at DESC, b.id DESC`, ownerID, ownerID)
}

func (r BookingRepository) Recent(limit int) ([]models.BookingDetail, error) {
	return r.listDetails(` ORDER BY b.created_at DESC, b.id DESC LIMIT ?`, limit)
}

// DailySales is one aggregation bucket of the dashboard sales chart.
type DailySales struct {
	Day   time.Time
	Sales float64
}

// SalesSince sums totalPrice of confirmed/completed bookings per calendar day
// from the given instant onward. Days with no sales produce no row; the
// caller zero-fills.
func (r BookingRepository) SalesSince(since time.Time) ([]DailySales, error) {
	rows, err := r.db().Query(`
		SELECT DATE(created_at) AS day, SUM(total_price) AS sales
		FROM bookings
		WHERE created_at >= ? AND status IN ('confirmed','completed')
		GROUP BY DATE(created_at)
		ORDER BY day ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailySales{}
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Day, &d.Sales); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountForRentable counts bookings referencing the rentable; used to guard
// catalog deletes.
func (r BookingRepository) CountForRentable(kind string, id int64) (int, error) {
	col := "item_id"
	if kind == "vehicle" {
		col = "vehicle_id"
	}
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE `+col+`=?`, id).Scan(&n)
	return n, err
}

// UpdateStatus writes the new booking status; ex may be a *sql.Tx so the
// paired rentable write commits atomically with this one.
func (r BookingRepository) UpdateStatus(ex Execer, id int64, status models.BookingStatus) error {
	if ex == nil {
		ex = r.db()
	}
	// Existence is checked by the caller; a same-status rewrite may report
	// zero affected rows on MySQL, so RowsAffected is not consulted here.
	_, err := ex.Exec(`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?`, string(status), id)
	return err
}

func (r BookingRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
