package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// CurrentUser loads the logged-in user from the session onto the context
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		uid := session.Get("user_id")
		if uid != nil {
			user, err := model.GetUserByID(uid)
			if err == nil {
				c.Set("user", &user)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a logged-in user
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := c.Get("user"); user != nil {
			if _, ok := user.(*model.User); ok {
				c.Next()
				return
			}
		}

		c.JSON(200, serializer.CheckLogin())
		c.Abort()
	}
}

// ManageUploadsRequired rejects requests from users without the upload
// management capability. Every mutating folder operation sits behind
// this single check.
func ManageUploadsRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := c.Get("user"); user != nil {
			if u, ok := user.(*model.User); ok && u.CanManageUploads() {
				c.Next()
				return
			}
		}

		c.JSON(200, serializer.Err(serializer.CodeNoPermissionErr,
			"You are not allowed to manage uploads.", nil))
		c.Abort()
	}
}
