package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"
	"prorental/internal/session"
	"prorental/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AdminService handles the session-cookie side: admin login/logout and
// profile management. Admins live in their own table, not the users table.
type AdminService struct {
	AdminRepo repositories.AdminRepository
	Sessions  session.Store
	DB        *sql.DB
	RequestID string
}

func (s AdminService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AdminService) admins() repositories.AdminRepository {
	if s.AdminRepo.DB != nil {
		return s.AdminRepo
	}
	return repositories.AdminRepository{DB: s.db()}
}

type AdminProfileUpdateInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

// Login verifies the credentials and opens a server-side session. Legacy
// rows still carry plaintext passwords, so a failed bcrypt compare falls
// back to a direct match; every write path stores a bcrypt hash.
func (s AdminService) Login(ctx context.Context, email, password string) (string, models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", models.Admin{}, domain.ValidationError{Msg: "email dan password wajib diisi"}
	}

	a, err := s.admins().GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.Admin{}, domain.ForbiddenError{Msg: "email atau password salah"}
		}
		return "", models.Admin{}, domain.InternalError{Err: err}
	}
	if !passwordMatches(a.Password, password) {
		return "", models.Admin{}, domain.ForbiddenError{Msg: "email atau password salah"}
	}

	sid, err := s.Sessions.Create(ctx, session.AdminSession{
		AdminID: a.ID,
		Name:    a.Name,
		Email:   a.Email,
	})
	if err != nil {
		return "", models.Admin{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "admin", "login", fmt.Sprintf("admin_id=%d", a.ID))
	return sid, a, nil
}

func passwordMatches(stored, given string) bool {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil {
		return true
	}
	return stored != "" && stored == given
}

func (s AdminService) Logout(ctx context.Context, sid string) error {
	if err := s.Sessions.Delete(ctx, sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "admin", "logout", "session removed")
	return nil
}

func (s AdminService) GetProfile(adminID int64) (models.Admin, error) {
	a, err := s.admins().GetByID(adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
		}
		return models.Admin{}, domain.InternalError{Err: err}
	}
	return a, nil
}

// UpdateProfile persists the changes and refreshes the session payload so
// subsequent requests in the same session see the new name/email.
func (s AdminService) UpdateProfile(ctx context.Context, sid string, adminID int64, in AdminProfileUpdateInput) (models.Admin, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" && in.Email == "" && in.Phone == "" && in.Password == "" {
		return models.Admin{}, domain.ValidationError{Msg: "tidak ada field yang diubah"}
	}

	hash := ""
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return models.Admin{}, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Admin{}, domain.InternalError{Err: err}
		}
		hash = string(h)
	}

	if err := s.admins().UpdateProfile(adminID, in.Name, in.Email, in.Phone, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
		}
		if isDuplicateEntry(err) {
			return models.Admin{}, domain.ValidationError{Field: "email", Msg: "sudah terdaftar"}
		}
		return models.Admin{}, domain.InternalError{Err: err}
	}

	a, err := s.GetProfile(adminID)
	if err != nil {
		return models.Admin{}, err
	}

	if sid != "" {
		if err := s.Sessions.Refresh(ctx, sid, session.AdminSession{
			AdminID: a.ID,
			Name:    a.Name,
			Email:   a.Email,
		}); err != nil && !errors.Is(err, session.ErrNotFound) {
			return models.Admin{}, domain.InternalError{Err: err}
		}
	}

	utils.LogEvent(s.RequestID, "admin", "update_profile", fmt.Sprintf("admin_id=%d", adminID))
	return a, nil
}

func (s AdminService) ForgotPassword(in ForgotPasswordInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)
	if email == "" || phone == "" || in.NewPassword == "" {
		return domain.ValidationError{Msg: "email, phoneNumber, dan newPassword wajib diisi"}
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.ValidationError{Field: "newPassword", Msg: "minimal 6 karakter"}
	}

	a, err := s.admins().FindByEmailOrPhone(email, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "admin", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if !strings.EqualFold(a.Email, email) || a.Phone != phone {
		return domain.NotFoundError{Resource: "admin"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.admins().UpdatePassword(a.ID, string(hash)); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "admin", "forgot_password", fmt.Sprintf("admin_id=%d", a.ID))
	return nil
}
