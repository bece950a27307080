package router

import (
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	blogHandler := handlers.NewBlogHandler()
	commentaryHandler := handlers.NewCommentaryHandler()
	categoryHandler := handlers.NewCategoryHandler()
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	adminHandler := handlers.NewAdminHandler()

	// Public routes
	r.GET("/", blogHandler.Root)
	r.GET("/home", blogHandler.Home)
	r.GET("/read", blogHandler.ReadIndex)
	r.GET("/read/:slug", blogHandler.Read)
	r.GET("/error", blogHandler.Error)

	r.GET("/categories", categoryHandler.List)
	r.GET("/categories/more", categoryHandler.MoreIndex)
	r.GET("/categories/more/:slug", categoryHandler.More)

	users := r.Group("/users")
	{
		guest := users.Group("/")
		guest.Use(middleware.GuestOnly())
		{
			guest.GET("/signup", authHandler.ShowSignup)
			guest.POST("/signup", authHandler.Signup)
			guest.GET("/login", authHandler.ShowLogin)
			guest.POST("/login", authHandler.Login)
		}

		users.GET("/profile/:username", userHandler.Profile)

		authed := users.Group("/")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/logout", authHandler.Logout)
			authed.GET("/profile", userHandler.ProfileIndex)
			authed.GET("/profile/:username/edit", userHandler.ShowEditProfile)
			authed.POST("/profile/edit", userHandler.EditProfile)
		}
	}

	// Commentary routes, all behind login
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/read", commentaryHandler.Create)
		authorized.GET("/commentary", commentaryHandler.Index)
		authorized.GET("/answer", commentaryHandler.AnswerIndex)
		authorized.POST("/answer", commentaryHandler.CreateAnswer)

		authorized.GET("/commentary/edit", commentaryHandler.EditIndex)
		authorized.GET("/commentary/edit/:id", commentaryHandler.ShowEdit)
		authorized.POST("/commentary/edit", commentaryHandler.Edit)
		authorized.GET("/commentary/delete", commentaryHandler.DeleteIndex)
		authorized.GET("/commentary/delete/:id", commentaryHandler.ShowDelete)
		authorized.POST("/commentary/delete", commentaryHandler.Delete)

		authorized.GET("/answer/edit", commentaryHandler.AnswerEditIndex)
		authorized.GET("/answer/edit/:id", commentaryHandler.ShowAnswerEdit)
		authorized.POST("/answer/edit", commentaryHandler.AnswerEdit)
		authorized.GET("/answer/delete", commentaryHandler.AnswerDeleteIndex)
		authorized.GET("/answer/delete/:id", commentaryHandler.ShowAnswerDelete)
		authorized.POST("/answer/delete", commentaryHandler.AnswerDelete)
	}

	// Administration
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Dashboard)

		admin.GET("/categories", adminHandler.ListCategories)
		admin.GET("/category", adminHandler.CategoryIndex)
		admin.GET("/category/:slug", adminHandler.ShowCategory)
		admin.GET("/categories/add", adminHandler.ShowAddCategory)
		admin.POST("/categories/add", adminHandler.AddCategory)
		admin.GET("/categories/edit", adminHandler.EditCategoryIndex)
		admin.GET("/categories/edit/:slug", adminHandler.ShowEditCategory)
		admin.POST("/categories/edit", adminHandler.EditCategory)
		admin.GET("/categories/delete", adminHandler.DeleteCategoryIndex)
		admin.GET("/categories/delete/:slug", adminHandler.ShowDeleteCategory)
		admin.POST("/categories/delete", adminHandler.DeleteCategory)
		admin.GET("/categories/delete_all", adminHandler.ShowDeleteAll)
		admin.POST("/categories/delete_all", adminHandler.DeleteAll)

		admin.GET("/posts", adminHandler.ListPosts)
		admin.GET("/posts/add", adminHandler.ShowAddPost)
		admin.POST("/posts/add", adminHandler.AddPost)
		admin.GET("/posts/read", adminHandler.ReadPostIndex)
		admin.GET("/posts/read/:slug", adminHandler.ReadPost)
		admin.GET("/posts/edit", adminHandler.EditPostIndex)
		admin.GET("/posts/edit/:slug", adminHandler.ShowEditPost)
		admin.POST("/posts/edit", adminHandler.EditPost)
		admin.GET("/posts/delete", adminHandler.DeletePostIndex)
		admin.GET("/posts/delete/:slug", adminHandler.ShowDeletePost)
		admin.POST("/posts/delete", adminHandler.DeletePost)
	}
}
