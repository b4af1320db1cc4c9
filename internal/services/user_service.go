package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"prorental/internal/auth"
	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"
	"prorental/internal/utils"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and profile management for the
// bearer-token side of the house.
type UserService struct {
	UserRepo  repositories.UserRepository
	DB        *sql.DB
	JWTSecret string
	RequestID string
}

func (s UserService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UserService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordInput struct {
	Email       string `json:"email"`
	Phone       string `json:"phoneNumber"`
	NewPassword string `json:"newPassword"`
}

type ProfileUpdateInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

// AuthResult is the login response body: token plus the sanitized user.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

const minPasswordLen = 6

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (s UserService) Register(in RegisterInput) (models.User, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return models.User{}, domain.ValidationError{Msg: "name, email, phoneNumber, dan password wajib diisi"}
	}
	if len(in.Password) < minPasswordLen {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	id, err := s.users().Create(models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, domain.ValidationError{Field: "email", Msg: "sudah terdaftar"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	u, err := s.users().GetByID(id)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "register", fmt.Sprintf("user_id=%d", id))
	return u, nil
}

func (s UserService) Login(in LoginInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthResult{}, domain.ValidationError{Msg: "email dan password wajib diisi"}
	}

	u, err := s.users().GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthResult{}, domain.ForbiddenError{Msg: "email atau password salah"}
		}
		return AuthResult{}, domain.InternalError{Err: err}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResult{}, domain.ForbiddenError{Msg: "email atau password salah"}
	}

	token, err := auth.IssueToken(s.JWTSecret, u.ID, u.Role)
	if err != nil {
		return AuthResult{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "login", fmt.Sprintf("user_id=%d", u.ID))
	return AuthResult{Token: token, User: u}, nil
}

func (s UserService) GetProfile(userID int64) (models.User, error) {
	u, err := s.users().GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (s UserService) UpdateProfile(userID int64, in ProfileUpdateInput) (models.User, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" && in.Phone == "" && in.Password == "" {
		return models.User{}, domain.ValidationError{Msg: "tidak ada field yang diubah"}
	}

	hash := ""
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 6 karakter"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, domain.InternalError{Err: err}
		}
		hash = string(h)
	}

	if err := s.users().UpdateProfile(userID, in.Name, in.Phone, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "update_profile", fmt.Sprintf("user_id=%d", userID))
	return s.GetProfile(userID)
}

// ForgotPassword resets the password when the caller proves knowledge of both
// the account email and phone number. No mail is ever sent.
func (s UserService) ForgotPassword(in ForgotPasswordInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)
	if email == "" || phone == "" || in.NewPassword == "" {
		return domain.ValidationError{Msg: "email, phoneNumber, dan newPassword wajib diisi"}
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.ValidationError{Field: "newPassword", Msg: "minimal 6 karakter"}
	}

	u, err := s.users().FindByEmailOrPhone(email, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "user", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if !strings.EqualFold(u.Email, email) || u.Phone != phone {
		return domain.NotFoundError{Resource: "user"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.users().UpdatePassword(u.ID, string(hash)); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "users", "forgot_password", fmt.Sprintf("user_id=%d", u.ID))
	return nil
}
