package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account within the service. Expenses, budgets and
// settings reference it by lowercased email, not by id.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser validates signup input and returns a user with a bcrypt password
// hash and a lowercased email.
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validation("Name is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, Validation("Email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, Validation("Invalid email")
	}

	if len(password) < 6 {
		return nil, Validation("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// NormalizeEmail lowercases and trims an email used as an owner key. It fails
// on anything that cannot name an account.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", Validation("User email is required")
	}
	return email, nil
}
