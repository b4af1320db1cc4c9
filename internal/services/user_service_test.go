package services

import (
	"testing"
	"time"

	"prorental/internal/domain"
	"prorental/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

func userRows(id int64, email, passwordHash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "phone_number", "role", "created_at", "updated_at",
	}).AddRow(id, "Budi", email, passwordHash, "0800", "user", now, now)
}

func TestUserLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("budi@mail.com").
		WillReturnRows(userRows(7, "budi@mail.com", string(hash)))

	svc := UserService{
		UserRepo:  repositories.UserRepository{DB: db},
		DB:        db,
		JWTSecret: "test-secret",
	}

	res, err := svc.Login(LoginInput{Email: "Budi@Mail.com", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("Login returned empty token")
	}
	if res.User.ID != 7 {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia1"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(userRows(7, "budi@mail.com", string(hash)))

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: "x"}
	_, err = svc.Login(LoginInput{Email: "budi@mail.com", Password: "salah"})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}, DB: db}
	_, err = svc.Register(RegisterInput{
		Name: "Budi", Email: "budi@mail.com", Phone: "0800", Password: "rahasia1",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error on duplicate email, got %v", err)
	}
}

func TestUserRegisterValidation(t *testing.T) {
	svc := UserService{}
	_, err := svc.Register(RegisterInput{Name: "Budi", Email: "b@mail.com", Phone: "0800", Password: "12345"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
	_, err = svc.Register(RegisterInput{Email: "b@mail.com", Phone: "0800", Password: "123456"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
}
