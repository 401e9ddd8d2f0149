package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本的全部业务路由
func RegisterV1Routes(v1 *gin.RouterGroup, h *RouterHandlers) {
	// 认证
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		sso := auth.Group("/sso")
		{
			sso.GET("/providers", h.Auth.SSOProviders)
			sso.GET("/:provider/login", h.Auth.SSOLogin)
			sso.GET("/callback", h.Auth.SSOCallback)
		}
	}

	// 当前用户
	users := v1.Group("/users")
	{
		users.GET("/me", h.User.Me)
		users.PUT("/me", h.User.UpdateMe)
	}

	// 项目
	projects := v1.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:pid", h.Project.GetProject)
		projects.PUT("/:pid", h.Project.UpdateProject)
		projects.DELETE("/:pid", h.Project.DeleteProject)

		// 项目内资源
		projects.GET("/:pid/contents", h.Content.ListContents)
		projects.GET("/:pid/skills", h.Taxonomy.ListProjectSkills)
		projects.DELETE("/:pid/skills/:sid", h.Taxonomy.UnlinkProjectSkill)
		projects.GET("/:pid/media", h.Media.List)
		projects.POST("/:pid/media", h.Media.Upload)

		// 内容助手
		projects.POST("/:pid/assistant/turn", h.Assistant.Turn)
		projects.POST("/:pid/assistant/generate", h.Assistant.Generate)
	}

	// 公开站点访问（按子域名）
	v1.GET("/sites/:subdomain", h.Project.GetProjectBySubdomain)

	// 内容
	contents := v1.Group("/contents")
	{
		contents.GET("/:cid", h.Content.GetContent)
		contents.PUT("/:cid", h.Content.UpdateContent)
		contents.DELETE("/:cid", h.Content.DeleteContent)
		contents.GET("/:cid/revisions", h.Content.ListRevisions)
		contents.POST("/:cid/revisions/:rid/restore", h.Content.RestoreRevision)
		contents.GET("/:cid/tags", h.Taxonomy.ListContentTags)
		contents.DELETE("/:cid/tags/:tid", h.Taxonomy.UnlinkContentTag)
	}

	// 媒体
	media := v1.Group("/media")
	{
		media.GET("/:mid/file", h.Media.File)
		media.DELETE("/:mid", h.Media.Delete)
	}

	// 外部回调
	webhooks := v1.Group("/webhooks")
	{
		webhooks.POST("/voice", h.Webhook.Voice)
	}
}
