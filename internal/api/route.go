package api

import (
	"net/http"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/verify-email", group.UserHandler.VerifyEmail)
			userGroup.POST("/password/forget", group.UserHandler.ForgotPassword)
			userGroup.PUT("/password/reset", group.UserHandler.ResetPassword)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetProfile)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.GET("/list", group.UserHandler.ListUsers)
				adminGroup.POST("/:user_id/ban", group.UserHandler.BanUser)
				adminGroup.POST("/:user_id/unban", group.UserHandler.UnbanUser)
				adminGroup.POST("/:user_id/grant-admin", group.UserHandler.GrantAdmin)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPublicPosts)
				authOptGroup.GET("/latest", group.PostHandler.LatestPosts)
				authOptGroup.GET("/search", group.PostHandler.SearchPosts)
				authOptGroup.GET("/detail/:ref", group.PostHandler.GetPost)
				authOptGroup.GET("/author/:author", group.PostHandler.ListAuthorPosts)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:ref", group.PostHandler.UpdatePost)
				authGroup.PUT("/:ref/status", group.PostHandler.TransitionPost)
				authGroup.DELETE("/:ref", group.PostHandler.DeletePost)
				authGroup.GET("/self", group.PostHandler.ListOwnPosts)
			}

			reviewGroup := authGroup.Group("/review")
			reviewGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				reviewGroup.GET("/queue", group.PostHandler.ListReviewQueue)
			}
		}

		engageGroup := apiGroup.Group("/engage")
		{
			// 浏览无需登录
			engageGroup.POST("/view/:ref", group.EngageHandler.RecordView)
			engageGroup.GET("/stats/:ref", group.EngageHandler.GetMonthlyStats)

			authGroup := engageGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/like/:ref", group.EngageHandler.RecordLike)
				authGroup.DELETE("/like/:ref", group.EngageHandler.RecordUnlike)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("/list", group.NotificationHandler.GetNotificationList)
			notifyGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notifyGroup.POST("/read", group.NotificationHandler.MarkRead)
			notifyGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		newsletterGroup := apiGroup.Group("/newsletter")
		{
			newsletterGroup.POST("/subscribe", group.NewsletterHandler.Subscribe)
			newsletterGroup.GET("/unsubscribe", group.NewsletterHandler.Unsubscribe)

			adminGroup := newsletterGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("/digest/send", group.NewsletterHandler.TriggerDigest)
			}
		}

		apiGroup.GET("/sitemap", group.SitemapHandler.GetEntries)

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
