package repositories

import (
	"database/sql"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `
	id, COALESCE(type,''), COALESCE(brand,''), COALESCE(model,''), COALESCE(year,0),
	price_per_hour, available, COALESCE(description,''), COALESCE(image_url,''),
	COALESCE(seat,0), COALESCE(door,0), COALESCE(luggage,''), COALESCE(transmission,''),
	COALESCE(drive,''), COALESCE(fuel_type,''), COALESCE(engine,''),
	COALESCE(status,''), created_by, created_at, updated_at`

func scanVehicle(row interface{ Scan(dest ...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Type,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.PricePerHour,
		&v.Available,
		&v.Description,
		&v.ImageURL,
		&v.Seat,
		&v.Door,
		&v.Luggage,
		&v.Transmission,
		&v.Drive,
		&v.FuelType,
		&v.Engine,
		&v.Status,
		&v.CreatedBy,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles
			(type, brand, model, year, price_per_hour, available, description, image_url,
			 seat, door, luggage, transmission, drive, fuel_type, engine, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		v.Type,
		v.Brand,
		v.Model,
		nullIfZero(v.Year),
		v.PricePerHour,
		v.Available,
		nullIfEmpty(v.Description),
		nullIfEmpty(v.ImageURL),
		nullIfZero(v.Seat),
		nullIfZero(v.Door),
		nullIfEmpty(v.Luggage),
		nullIfEmpty(v.Transmission),
		nullIfEmpty(v.Drive),
		nullIfEmpty(v.FuelType),
		nullIfEmpty(v.Engine),
		statusOrAvailable(v.Status),
		v.CreatedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	row := r.db().QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id=?`, id)
	return scanVehicle(row)
}

func (r VehicleRepository) List(page, limit int) ([]models.Vehicle, int, error) {
	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.db().Query(`SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r VehicleRepository) Update(id int64, patch models.VehicleUpdate) error {
	sets := []string{}
	args := []any{}

	if patch.Type != nil {
		sets = append(sets, "type=?")
		args = append(args, strings.TrimSpace(*patch.Type))
	}
	if patch.Brand != nil {
		sets = append(sets, "brand=?")
		args = append(args, strings.TrimSpace(*patch.Brand))
	}
	if patch.Model != nil {
		sets = append(sets, "model=?")
		args = append(args, strings.TrimSpace(*patch.Model))
	}
	if patch.Year != nil {
		sets = append(sets, "year=?")
		args = append(args, *patch.Year)
	}
	if patch.PricePerHour != nil {
		sets = append(sets, "price_per_hour=?")
		args = append(args, *patch.PricePerHour)
	}
	if patch.Available != nil {
		sets = append(sets, "available=?")
		args = append(args, *patch.Available)
	}
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Description)))
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.ImageURL)))
	}
	if patch.Seat != nil {
		sets = append(sets, "seat=?")
		args = append(args, *patch.Seat)
	}
	if patch.Door != nil {
		sets = append(sets, "door=?")
		args = append(args, *patch.Door)
	}
	if patch.Luggage != nil {
		sets = append(sets, "luggage=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Luggage)))
	}
	if patch.Transmission != nil {
		sets = append(sets, "transmission=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Transmission)))
	}
	if patch.Drive != nil {
		sets = append(sets, "drive=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Drive)))
	}
	if patch.FuelType != nil {
		sets = append(sets, "fuel_type=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.FuelType)))
	}
	if patch.Engine != nil {
		sets = append(sets, "engine=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Engine)))
	}
	if patch.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, strings.TrimSpace(*patch.Status))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE vehicles SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id=?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return sql.ErrNoRows
		}
	}
	return nil
}

func (r VehicleRepository) UpdateStatus(ex Execer, id int64, status string) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(`UPDATE vehicles SET status=? WHERE id=?`, status, id)
	return err
}

func (r VehicleRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
