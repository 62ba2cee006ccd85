package service

import (
	"errors"
	"testing"

	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"
)

func newAuthTestService(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	env.cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	env.cfg.JWT.ExpireHours = 24
	return NewAuthService(env.cfg, repository.NewUserRepository(env.db)), env
}

func TestLoginIssuesToken(t *testing.T) {
	auth, env := newAuthTestService(t)
	hash, err := auth.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := env.db.Create(&models.User{
		Email:        "demo@cashere.local",
		PasswordHash: hash,
		DisplayName:  "Warung Demo",
	}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	result, err := auth.Login(LoginInput{Email: "  Demo@Cashere.LOCAL ", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("token is empty")
	}

	claims, err := auth.ParseJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.OwnerID != result.Owner.ID || claims.Email != "demo@cashere.local" {
		t.Fatalf("claims = %+v, want owner %d", claims, result.Owner.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth, env := newAuthTestService(t)
	hash, err := auth.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := env.db.Create(&models.User{
		Email:        "demo@cashere.local",
		PasswordHash: hash,
	}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, err := auth.Login(LoginInput{Email: "demo@cashere.local", Password: "salah"}); !errors.Is(err, ErrCredentialsInvalid) {
		t.Fatalf("login error = %v, want ErrCredentialsInvalid", err)
	}
	if _, err := auth.Login(LoginInput{Email: "tidakada@cashere.local", Password: "rahasia123"}); !errors.Is(err, ErrCredentialsInvalid) {
		t.Fatalf("unknown email error = %v, want ErrCredentialsInvalid", err)
	}
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	auth, _ := newAuthTestService(t)
	token, _, err := auth.GenerateJWT(&models.User{ID: 1, Email: "demo@cashere.local"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	other := &AuthService{cfg: &config.Config{}}
	other.cfg.JWT.SecretKey = "a-completely-different-secret-key-value"
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another key should not verify")
	}
}
