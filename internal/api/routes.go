package api

import (
	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/api/middleware"
	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/content"
)

// Dependencies 汇总路由需要的服务。
type Dependencies struct {
	Content             *content.Service
	Auth                *auth.AuthService
	TestimonialPassword string
	ResearchPassword    string
}

// RegisterRoutes 注册 /api 下的全部路由。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	publicHandler := NewPublicHandler(deps.Content)
	adminHandler := NewAdminHandler(deps.Content)
	authHandler := NewAuthHandler(deps.Auth)
	authMiddleware := middleware.AuthMiddleware(deps.Auth)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/content", publicHandler.Content)
		apiGroup.GET("/projects", publicHandler.Projects)
		apiGroup.GET("/certificates", publicHandler.Certificates)
		apiGroup.GET("/research", publicHandler.Research)
		apiGroup.GET("/testimonials", publicHandler.Testimonials)
		apiGroup.POST("/contact", publicHandler.Contact)
		apiGroup.POST("/testimonials",
			middleware.SharedSecretMiddleware(deps.TestimonialPassword, "password"),
			publicHandler.SubmitTestimonial,
		)
		apiGroup.POST("/research/:id/document",
			middleware.SharedSecretMiddleware(deps.ResearchPassword, "password"),
			publicHandler.ResearchDocument,
		)

		apiGroup.POST("/login", authHandler.Login)
		apiGroup.POST("/logout", authHandler.Logout)

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(authMiddleware)
		{
			adminGroup.GET("", adminHandler.Dashboard)
			adminGroup.POST("/certificates", adminHandler.AddCertificate)
			adminGroup.POST("/documents", adminHandler.AddDocument)
			adminGroup.POST("/research", adminHandler.AddResearch)
			adminGroup.POST("/projects", adminHandler.AddProject)
			adminGroup.POST("/education", adminHandler.AddEducation)
			adminGroup.POST("/experience", adminHandler.AddExperience)
			adminGroup.POST("/skills", adminHandler.AddSkill)
			adminGroup.POST("/testimonials", adminHandler.AddTestimonial)
			adminGroup.PUT("/testimonials/:id", adminHandler.UpdateTestimonial)
			adminGroup.PUT("/profile", adminHandler.UpdateProfile)
			adminGroup.POST("/profile/roles", adminHandler.AddRole)
			adminGroup.DELETE("/profile/roles/:index", adminHandler.DeleteRole)
			adminGroup.PUT("/home", adminHandler.UpdateHome)
			adminGroup.GET("/download/:filename", adminHandler.Download)
			adminGroup.DELETE("/:kind/:id", adminHandler.Delete)
		}
	}
}
