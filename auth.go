package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"declara/models"

	"golang.org/x/crypto/bcrypt"
)

// Operator account helpers. Taxpayers are the managed records; Users are the
// people running the console.

func RegisterUser(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if len(password) < 6 { // basic password policy
		return fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return fmt.Errorf("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular operator"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return fmt.Errorf("failed to ensure user role: %v", err2)
		}
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hashedPassword, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return fmt.Errorf("user already exists")
		}
		return err
	}
	return nil
}

func Authenticate(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// roleNameFor resolves the role name for token claims; empty when unset.
func roleNameFor(user models.User) string {
	if user.RoleID == nil {
		return ""
	}
	var r models.Role
	if err := db.First(&r, *user.RoleID).Error; err != nil {
		return ""
	}
	return r.Name
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash
// with expiry and returns the raw token string.
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// findRefreshTokenByRaw looks a refresh token record up by its raw string.
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}
