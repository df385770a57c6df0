package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// ParamErrorMsg builds a readable hint from a validator error
func ParamErrorMsg(field string, tag string) string {
	fieldMap := map[string]string{
		"UserName": "Email",
		"Password": "Password",
		"Name":     "Folder name",
		"FileName": "File name",
	}
	tagMap := map[string]string{
		"required": "cannot be empty",
		"min":      "is too short",
		"max":      "is too long",
		"email":    "format is invalid",
	}
	fieldVal, findField := fieldMap[field]
	tagVal, findTag := tagMap[tag]
	if findField && findTag {
		return fieldVal + " " + tagVal + "."
	}
	return ""
}

// ErrorResponse maps binding errors onto the response envelope
func ErrorResponse(err error) serializer.Response {
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, e := range ve {
			return serializer.ParamErr(
				ParamErrorMsg(e.Field(), e.Tag()),
				err,
			)
		}
	}

	if _, ok := err.(*json.UnmarshalTypeError); ok {
		return serializer.ParamErr("Mismatched JSON type.", err)
	}

	return serializer.ParamErr("", err)
}

// CurrentUser fetches the logged-in user from the request context
func CurrentUser(c *gin.Context) *model.User {
	if user, _ := c.Get("user"); user != nil {
		if u, ok := user.(*model.User); ok {
			return u
		}
	}
	return nil
}
