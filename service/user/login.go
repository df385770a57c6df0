package user

import (
	"github.com/gin-gonic/gin"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// UserLoginService manages user login
type UserLoginService struct {
	UserName string `form:"userName" json:"userName" binding:"required,email"`
	Password string `form:"Password" json:"Password" binding:"required,min=4,max=64"`
}

// Login logs the user in and stores the identity in the session
func (service *UserLoginService) Login(c *gin.Context) serializer.Response {
	expectedUser, err := model.GetUserByEmail(service.UserName)
	if err != nil {
		return serializer.Err(serializer.CodeCheckLogin, "Wrong password or email address.", nil)
	}

	if authOK, _ := expectedUser.CheckPassword(service.Password); !authOK {
		return serializer.Err(serializer.CodeCheckLogin, "Wrong password or email address.", nil)
	}

	if expectedUser.Status == model.Baned {
		return serializer.Err(serializer.CodeNoPermissionErr, "This account has been blocked.", nil)
	}

	util.SetSession(c, map[string]interface{}{"user_id": expectedUser.ID})
	return serializer.BuildUserResponse(expectedUser)
}
