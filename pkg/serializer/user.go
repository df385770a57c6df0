package serializer

import (
	"time"

	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/hashid"
)

// User logged-in user as exposed on the public surface
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"user_name"`
	Nickname      string    `json:"nickname"`
	ManageUploads bool      `json:"manage_uploads"`
	CreatedAt     time.Time `json:"created_at"`
}

// BuildUser serializes a user
func BuildUser(user model.User) User {
	return User{
		ID:            hashid.HashID(user.ID, hashid.UserID),
		Email:         user.Email,
		Nickname:      user.Nick,
		ManageUploads: user.ManageUploads,
		CreatedAt:     user.CreatedAt,
	}
}

// BuildUserResponse serializes a single-user response
func BuildUserResponse(user model.User) Response {
	return Response{
		Data: BuildUser(user),
	}
}
