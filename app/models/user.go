package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FirstName    string         `gorm:"type:varchar(100)" json:"firstName" validate:"max=100"`
	LastName     string         `gorm:"type:varchar(100)" json:"lastName" validate:"max=100"`
	Name         string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Email        string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password     string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Phone        string         `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	Location     string         `gorm:"type:varchar(150);default:null" json:"location" validate:"max=150"`
	Website      string         `gorm:"type:varchar(255);default:null" json:"website" validate:"max=255"`
	Bio          string         `gorm:"type:text;default:null" json:"bio" validate:"max=1000"`
	ProfileImage string         `gorm:"type:varchar(255);default:null" json:"profileImage" validate:"max=255"`
	Role         string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a validated user with a hashed password.
func CreateUser(firstName, lastName, email, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  pw,
		Role:      ROLE_USER,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsAdmin reports whether the user carries the admin role. Legacy records
// stored mixed-case role values, so the comparison is case-insensitive.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, ROLE_ADMIN)
}

// DisplayName returns the name shown next to a complaint or comment.
// Preference order: "firstName lastName", display name, email, "Citizen".
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Citizen"
}
