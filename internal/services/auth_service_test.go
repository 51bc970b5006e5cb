package services

import (
	"errors"
	"testing"
	"time"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/repositories"
)

type fakeAuthRepo struct {
	users  map[string]models.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string]models.User{}}
}

func (r *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (*models.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, repositories.ErrDuplicateKey
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = *user
	return user, nil
}

func (r *fakeAuthRepo) FindUserByUsername(username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *fakeAuthRepo) FindUserByID(id int64) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	service := NewAuthService(newFakeAuthRepo(), nil)

	user, err := service.RegisterUser(RegisterUserRequest{
		Username: "manager", Password: "correct-horse", FullName: "Pat Manager",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}

	response, err := service.LoginUser(LoginRequest{Username: "manager", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if response.AccessToken == "" || response.RefreshToken == "" {
		t.Error("login response missing tokens")
	}

	if _, err := service.LoginUser(LoginRequest{Username: "manager", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := service.LoginUser(LoginRequest{Username: "nobody", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	service := NewAuthService(newFakeAuthRepo(), nil)

	if _, err := service.RegisterUser(RegisterUserRequest{Username: "manager", Password: "correct-horse"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, err := service.RegisterUser(RegisterUserRequest{Username: "manager", Password: "another-pass"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("err = %v, want ErrUsernameExists", err)
	}
}

func TestGetUserProfile(t *testing.T) {
	repo := newFakeAuthRepo()
	service := NewAuthService(repo, nil)

	user, err := service.RegisterUser(RegisterUserRequest{Username: "manager", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	profile, err := service.GetUserProfile(user.ID)
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if profile.Username != "manager" {
		t.Errorf("username = %q, want manager", profile.Username)
	}

	if _, err := service.GetUserProfile(999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
