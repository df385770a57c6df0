package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/serializer"
)

// Ping status probe
func Ping(c *gin.Context) {
	c.JSON(200, serializer.Response{
		Code: 0,
		Data: conf.BackendVersion,
		Msg:  "Pong",
	})
}
