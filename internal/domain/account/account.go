package account

import (
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/flex"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrNotFound = errors.New("account not found")

type Account struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	MiddleName    string    `json:"middleName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	PasswordHash  string    `json:"-"` // never expose hash in JSON
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// WithoutPassword returns a copy that carries no hash, for values leaving a store
// on profile paths.
func (a Account) WithoutPassword() Account {
	a.PasswordHash = ""
	return a
}

// No presence checks here: missing fields go to the store as empty strings,
// and scalar values are cast to text the way the store would.
type RegisterRequest struct {
	FirstName     flex.String `json:"firstName"`
	MiddleName    flex.String `json:"middleName"`
	LastName      flex.String `json:"lastName"`
	Email         flex.String `json:"email"`
	ContactNumber flex.String `json:"contactNumber"`
	Password      flex.String `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// A factory to build an Account from the registration DTO. The ID is left to the store.
func NewFromRegisterRequest(req RegisterRequest, passwordHash string) Account {
	now := time.Now().UTC()

	return Account{
		FirstName:     string(req.FirstName),
		MiddleName:    string(req.MiddleName),
		LastName:      string(req.LastName),
		Email:         string(req.Email),
		ContactNumber: string(req.ContactNumber),
		PasswordHash:  passwordHash,
		Role:          RoleUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
