package router

import (
	"redbook-go/internal/api/handler"
	"redbook-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	messageHandler *handler.MessageHandler,
	notificationHandler *handler.NotificationHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.GET("/me", authHandler.Me)
			usersAuth.PUT("/me", authHandler.UpdateProfile)
			usersAuth.POST("/:id/follow", userHandler.Follow)
			usersAuth.DELETE("/:id/follow", userHandler.Unfollow)
		}

		// 公开接口，带 Token 时识别查看者
		usersPublic := users.Group("", middleware.OptionalAuth())
		{
			usersPublic.GET("/:id", userHandler.Profile)
			usersPublic.GET("/:id/posts", userHandler.ListPosts)
			usersPublic.GET("/:id/liked", userHandler.ListLiked)
			usersPublic.GET("/:id/collections", userHandler.ListCollections)
			usersPublic.GET("/:id/followers", userHandler.ListFollowers)
			usersPublic.GET("/:id/following", userHandler.ListFollowing)
		}
	}

	// --- 笔记模块 ---
	posts := v1.Group("/posts")
	{
		postsPublic := posts.Group("", middleware.OptionalAuth())
		{
			postsPublic.GET("", postHandler.Feed)
			postsPublic.GET("/:id", postHandler.Detail)
			postsPublic.GET("/:id/comments", postHandler.ListComments)
		}

		postsAuth := posts.Group("", middleware.AuthRequired())
		{
			postsAuth.POST("", postHandler.Create)
			postsAuth.DELETE("/:id", postHandler.Delete)
			postsAuth.PUT("/:id/visibility", postHandler.SetVisibility)
			postsAuth.POST("/:id/like", postHandler.Like)
			postsAuth.POST("/:id/collect", postHandler.Collect)
			postsAuth.POST("/:id/comments", postHandler.CreateComment)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.POST("/:id/like", commentHandler.Like)
	}

	// --- 私信模块 ---
	messages := v1.Group("/messages", middleware.AuthRequired())
	{
		messages.POST("", messageHandler.Send)
		messages.GET("/conversations", messageHandler.ListConversations)
		messages.GET("/:peer_id", messageHandler.History)
		messages.POST("/:peer_id/read", messageHandler.MarkRead)
	}

	// --- 通知模块 ---
	notifications := v1.Group("/notifications", middleware.AuthRequired())
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/read", notificationHandler.MarkAllRead)
	}

	// --- 未读角标 ---
	v1.GET("/unread-count", middleware.AuthRequired(), messageHandler.UnreadCount)
}
