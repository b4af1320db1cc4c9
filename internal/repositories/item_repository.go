package repositories

import (
	"database/sql"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain/models"
)

type ItemRepository struct {
	DB *sql.DB
}

func (r ItemRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const itemColumns = `
	id, COALESCE(brand,''), COALESCE(model,''), COALESCE(year,0),
	price_per_hour, COALESCE(description,''), COALESCE(image_url,''),
	COALESCE(status,''), created_by, created_at, updated_at`

func scanItem(row interface{ Scan(dest ...any) error }) (models.Item, error) {
	var it models.Item
	err := row.Scan(
		&it.ID,
		&it.Brand,
		&it.Model,
		&it.Year,
		&it.PricePerHour,
		&it.Description,
		&it.ImageURL,
		&it.Status,
		&it.CreatedBy,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	return it, err
}

func (r ItemRepository) Create(it models.Item) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO items (brand, model, year, price_per_hour, description, image_url, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		it.Brand,
		it.Model,
		nullIfZero(it.Year),
		it.PricePerHour,
		nullIfEmpty(it.Description),
		nullIfEmpty(it.ImageURL),
		statusOrAvailable(it.Status),
		it.CreatedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ItemRepository) GetByID(id int64) (models.Item, error) {
	row := r.db().QueryRow(`SELECT `+itemColumns+` FROM items WHERE id=?`, id)
	return scanItem(row)
}

// List returns one page sorted newest-first plus the unpaginated total.
func (r ItemRepository) List(page, limit int) ([]models.Item, int, error) {
	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.db().Query(`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (r ItemRepository) ListByOwner(userID int64) ([]models.Item, error) {
	rows, err := r.db().Query(`SELECT `+itemColumns+` FROM items WHERE created_by=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Update applies only the fields present in the patch.
func (r ItemRepository) Update(id int64, patch models.ItemUpdate) error {
	sets := []string{}
	args := []any{}

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
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.Description)))
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, nullIfEmpty(strings.TrimSpace(*patch.ImageURL)))
	}
	if patch.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, strings.TrimSpace(*patch.Status))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// MySQL reports 0 for no-op updates too; distinguish missing rows.
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM items WHERE id=?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return sql.ErrNoRows
		}
	}
	return nil
}

// UpdateStatus is the lifecycle manager's write path; ex may be a *sql.Tx.
func (r ItemRepository) UpdateStatus(ex Execer, id int64, status string) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(`UPDATE items SET status=? WHERE id=?`, status, id)
	return err
}

func (r ItemRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM items WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func statusOrAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.RentableAvailable
	}
	return s
}
