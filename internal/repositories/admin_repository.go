package repositories

import (
	"database/sql"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const adminColumns = `id, name, email, password, COALESCE(phone_number,''), created_at, updated_at`

func scanAdmin(row interface{ Scan(dest ...any) error }) (models.Admin, error) {
	var a models.Admin
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Password,
		&a.Phone,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r AdminRepository) GetByID(id int64) (models.Admin, error) {
	row := r.db().QueryRow(`SELECT `+adminColumns+` FROM admins WHERE id=?`, id)
	return scanAdmin(row)
}

func (r AdminRepository) GetByEmail(email string) (models.Admin, error) {
	row := r.db().QueryRow(`SELECT `+adminColumns+` FROM admins WHERE email=?`, strings.ToLower(strings.TrimSpace(email)))
	return scanAdmin(row)
}

func (r AdminRepository) FindByEmailOrPhone(email, phone string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	switch {
	case email != "" && phone != "":
		row := r.db().QueryRow(`SELECT `+adminColumns+` FROM admins WHERE email=? OR phone_number=? LIMIT 1`, email, phone)
		return scanAdmin(row)
	case email != "":
		return r.GetByEmail(email)
	case phone != "":
		row := r.db().QueryRow(`SELECT `+adminColumns+` FROM admins WHERE phone_number=? LIMIT 1`, phone)
		return scanAdmin(row)
	default:
		return models.Admin{}, sql.ErrNoRows
	}
}

// UpdateProfile writes name/email/phone and, when hash is non-empty, the
// (bcrypt-hashed) password.
func (r AdminRepository) UpdateProfile(id int64, name, email, phone, passwordHash string) error {
	sets := []string{"name=?", "email=?", "phone_number=?"}
	args := []any{name, strings.ToLower(email), phone}
	if passwordHash != "" {
		sets = append(sets, "password=?")
		args = append(args, passwordHash)
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE admins SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

func (r AdminRepository) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.db().Exec(`UPDATE admins SET password=? WHERE id=?`, passwordHash, id)
	return err
}
