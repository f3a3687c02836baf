package service

import (
	"errors"
	"testing"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/repository"
)

type stubAdminRepository struct {
	repository.AdminRepository

	getByUsernameFunc func(username string) (*models.Admin, error)
	getByIDFunc       func(id uint) (*models.Admin, error)
	updateFunc        func(admin *models.Admin) error
}

func (s *stubAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	if s.getByUsernameFunc != nil {
		return s.getByUsernameFunc(username)
	}
	return nil, nil
}

func (s *stubAdminRepository) GetByID(id uint) (*models.Admin, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(id)
	}
	return nil, nil
}

func (s *stubAdminRepository) Update(admin *models.Admin) error {
	if s.updateFunc != nil {
		return s.updateFunc(admin)
	}
	return nil
}

func newTestAuthService(repo repository.AdminRepository) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service-tests"
	cfg.JWT.ExpireHours = 24
	return NewAuthService(cfg, repo)
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc := newTestAuthService(&stubAdminRepository{})

	hash, err := svc.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if hash == "admin123" {
		t.Fatalf("hash should not equal plaintext")
	}
	if err := svc.VerifyPassword(hash, "admin123"); err != nil {
		t.Fatalf("verify correct password failed: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong"); err == nil {
		t.Fatalf("verify wrong password should fail")
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	svc := newTestAuthService(&stubAdminRepository{})
	admin := &models.Admin{ID: 3, Username: "admin"}

	token, expiresAt, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expires at should be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.AdminID != 3 || claims.Username != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, err := svc.ParseJWT(token + "tampered"); err == nil {
		t.Fatalf("tampered token should not parse")
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(&stubAdminRepository{})
	hash, err := svc.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}

	var updated *models.Admin
	repo := &stubAdminRepository{
		getByUsernameFunc: func(username string) (*models.Admin, error) {
			if username == "admin" {
				return &models.Admin{ID: 1, Username: "admin", PasswordHash: hash}, nil
			}
			return nil, nil
		},
		updateFunc: func(admin *models.Admin) error {
			updated = admin
			return nil
		},
	}
	svc = newTestAuthService(repo)

	admin, token, _, err := svc.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin == nil || token == "" {
		t.Fatalf("login should return admin and token")
	}
	if updated == nil || updated.LastLoginAt == nil {
		t.Fatalf("login should record last login time")
	}

	if _, _, _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	seedSvc := newTestAuthService(&stubAdminRepository{})
	hash, err := seedSvc.HashPassword("old-password")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}

	stored := &models.Admin{ID: 1, Username: "admin", PasswordHash: hash}
	repo := &stubAdminRepository{
		getByIDFunc: func(id uint) (*models.Admin, error) {
			if id == 1 {
				return stored, nil
			}
			return nil, nil
		},
		updateFunc: func(admin *models.Admin) error {
			stored = admin
			return nil
		},
	}
	svc := newTestAuthService(repo)

	if err := svc.ChangePassword(1, "wrong", "new-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(2, "old-password", "new-password"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing admin want ErrNotFound got %v", err)
	}

	if err := svc.ChangePassword(1, "old-password", "new-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if err := svc.VerifyPassword(stored.PasswordHash, "new-password"); err != nil {
		t.Fatalf("new password should verify after change: %v", err)
	}
}
