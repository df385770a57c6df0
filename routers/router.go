package routers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/middleware"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/routers/controllers"
)

// InitRouter initializes the router
func InitRouter() *gin.Engine {
	r := gin.Default()

	// CORS only when origins are configured
	if conf.CORSConfig.AllowOrigins[0] != "UNSET" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     conf.CORSConfig.AllowOrigins,
			AllowMethods:     conf.CORSConfig.AllowMethods,
			AllowHeaders:     conf.CORSConfig.AllowHeaders,
			AllowCredentials: conf.CORSConfig.AllowCredentials,
		}))
	}

	r.Use(middleware.Session(conf.SystemConfig.SessionSecret))
	r.Use(middleware.CurrentUser())

	v1 := r.Group("/api/v1")
	{
		site := v1.Group("site")
		{
			site.GET("ping", controllers.Ping)
		}

		// Login is the only route reachable without a session
		v1.POST("user/session", controllers.UserLogin)

		auth := v1.Group("")
		auth.Use(middleware.AuthRequired())
		{
			user := auth.Group("user")
			{
				user.GET("me", controllers.UserMe)
				user.DELETE("session", controllers.UserLogout)
			}

			folder := auth.Group("folder")
			{
				folder.GET("", controllers.ListFolders)
				folder.GET("organized", controllers.ListOrganized)
				folder.GET("counts", controllers.FolderCounts)
				folder.GET(":id/slug", controllers.FolderSlug)

				manage := folder.Group("")
				manage.Use(middleware.ManageUploadsRequired())
				{
					manage.POST("", controllers.CreateFolder)
					manage.PUT(":id", controllers.RenameFolder)
					manage.DELETE(":id", controllers.DeleteFolder)
				}
			}

			attachment := auth.Group("attachment")
			attachment.Use(middleware.ManageUploadsRequired())
			{
				attachment.POST("move", controllers.MoveAttachments)
				attachment.POST(":id/created", controllers.AttachmentCreated)
				attachment.POST("ensure", controllers.EnsureAssigned)
			}

			upload := auth.Group("upload")
			upload.Use(middleware.ManageUploadsRequired())
			{
				upload.POST("folder", controllers.StageUploadFolder)
			}
		}
	}
	return r
}
