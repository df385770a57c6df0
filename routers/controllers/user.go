package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
	"github.com/mediashelf/mediashelf/service/user"
)

// UserLogin logs a user in
func UserLogin(c *gin.Context) {
	var service user.UserLoginService
	if err := c.ShouldBindJSON(&service); err == nil {
		res := service.Login(c)
		c.JSON(200, res)
	} else {
		c.JSON(200, ErrorResponse(err))
	}
}

// UserMe returns the logged-in user
func UserMe(c *gin.Context) {
	currentUser := CurrentUser(c)
	c.JSON(200, serializer.BuildUserResponse(*currentUser))
}

// UserLogout logs the user out
func UserLogout(c *gin.Context) {
	util.DeleteSession(c, "user_id")
	c.JSON(200, serializer.Response{
		Msg: "Logged out.",
	})
}
