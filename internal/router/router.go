package router

import (
	"passlink/internal/handlers"
	"passlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	articleHandler := handlers.NewArticleHandler()
	commentHandler := handlers.NewCommentHandler()
	passwordHandler := handlers.NewPasswordHandler()
	profileHandler := handlers.NewProfileHandler()

	api := r.Group("/api")

	// 账号 (身份签发属于协作方，这里只提供最小实现)
	api.POST("/users", authHandler.Register)       // 注册
	api.POST("/users/login", authHandler.Login)    // 登录
	api.POST("/users/logout", authHandler.Logout)  // 退出登录
	api.GET("/profiles/:username", profileHandler.Get) // 用户资料

	// 公共路由 (Public Routes)
	api.GET("/articles", articleHandler.List)          // 文章列表（过滤+分页）
	api.GET("/articles/:slug", articleHandler.Get)     // 文章详情
	api.GET("/articles/:slug/comments", commentHandler.List) // 评论列表

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/articles/feed", articleHandler.Feed)      // 关注流
		authorized.POST("/articles", articleHandler.Create)        // 发布文章
		authorized.PUT("/articles/:slug", articleHandler.Update)   // 更新文章（仅作者）
		authorized.DELETE("/articles/:slug", articleHandler.Delete) // 删除文章（仅作者）

		authorized.POST("/articles/:slug/favorite", articleHandler.Favorite)     // 收藏
		authorized.DELETE("/articles/:slug/favorite", articleHandler.Unfavorite) // 取消收藏

		authorized.POST("/profiles/:username/follow", profileHandler.Follow)     // 关注
		authorized.DELETE("/profiles/:username/follow", profileHandler.Unfollow) // 取消关注

		authorized.POST("/articles/:slug/comments", commentHandler.Create)       // 发表评论
		authorized.DELETE("/articles/:slug/comments/:id", commentHandler.Delete) // 删除评论（仅作者）

		authorized.GET("/articles/:slug/passwords", passwordHandler.List)        // 条目列表（按评分降序）
		authorized.POST("/articles/:slug/passwords", passwordHandler.Create)     // 提交条目
		authorized.DELETE("/articles/:slug/passwords/:id", passwordHandler.Delete) // 删除条目（仅作者）

		authorized.POST("/articles/:slug/passwords/:id/approve", passwordHandler.Approve)         // 赞成
		authorized.DELETE("/articles/:slug/passwords/:id/approve", passwordHandler.Unapprove)     // 撤销赞成
		authorized.POST("/articles/:slug/passwords/:id/disapprove", passwordHandler.Disapprove)   // 反对
		authorized.DELETE("/articles/:slug/passwords/:id/disapprove", passwordHandler.Undisapprove) // 撤销反对
	}
}
