package repositories

import (
	"database/sql"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, password_hash, COALESCE(phone_number,''), role, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r UserRepository) Create(u models.User) (int64, error) {
	role := u.Role
	if role == "" {
		role = "user"
	}
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, phone_number, role)
		VALUES (?, ?, ?, ?, ?)
	`, u.Name, strings.ToLower(u.Email), u.PasswordHash, u.Phone, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email=?`, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

// FindByEmailOrPhone backs the forgot-password lookup; either key may be empty.
func (r UserRepository) FindByEmailOrPhone(email, phone string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	switch {
	case email != "" && phone != "":
		row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email=? OR phone_number=? LIMIT 1`, email, phone)
		return scanUser(row)
	case email != "":
		return r.GetByEmail(email)
	case phone != "":
		row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE phone_number=? LIMIT 1`, phone)
		return scanUser(row)
	default:
		return models.User{}, sql.ErrNoRows
	}
}

// UpdateProfile writes name/phone and, when hash is non-empty, the password.
func (r UserRepository) UpdateProfile(id int64, name, phone, passwordHash string) error {
	sets := []string{"name=?", "phone_number=?"}
	args := []any{name, phone}
	if passwordHash != "" {
		sets = append(sets, "password_hash=?")
		args = append(args, passwordHash)
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

func (r UserRepository) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.db().Exec(`UPDATE users SET password_hash=? WHERE id=?`, passwordHash, id)
	return err
}
