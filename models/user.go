package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/mediashelf/mediashelf/pkg/util"
)

const (
	// Active normal account status
	Active = iota
	// Baned blocked account
	Baned
)

// User an actor of the media library
type User struct {
	gorm.Model
	Email    string `gorm:"type:varchar(100);unique_index"`
	Nick     string `gorm:"size:50"`
	Password string `json:"-"`
	Status   int

	// ManageUploads the single capability this core checks before any
	// mutating operation
	ManageUploads bool
}

// GetUserByID finds a user by primary key
func GetUserByID(ID interface{}) (User, error) {
	var user User
	result := DB.First(&user, ID)
	return user, result.Error
}

// GetUserByEmail finds a user by email
func GetUserByEmail(email string) (User, error) {
	var user User
	result := DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// CanManageUploads returns whether the user passes the capability check
func (user *User) CanManageUploads() bool {
	return user.Status == Active && user.ManageUploads
}

// SetPassword sets a salted password for the user
func (user *User) SetPassword(password string) error {
	salt := util.RandStringRunes(16)
	bs := sha256.Sum256([]byte(salt + password))
	user.Password = salt + ":" + hex.EncodeToString(bs[:])
	return nil
}

// CheckPassword verifies the given password against the stored digest
func (user *User) CheckPassword(password string) (bool, error) {
	passwordStore := strings.Split(user.Password, ":")
	if len(passwordStore) != 2 {
		return false, errors.New("unknown password type")
	}

	bs := sha256.Sum256([]byte(passwordStore[0] + password))
	return hex.EncodeToString(bs[:]) == passwordStore[1], nil
}

// NewUser returns an empty user with defaults
func NewUser() User {
	return User{
		Status: Active,
	}
}
