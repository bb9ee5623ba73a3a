package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/middleware"
	"github.com/noah-isme/alumni-connect-api/internal/models"
	"github.com/noah-isme/alumni-connect-api/internal/service"
)

// Handlers bundles everything RegisterRoutes needs to mount the API.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Opportunities *OpportunityHandler
	Scholarships  *ScholarshipHandler
	Mentorship    *MentorshipHandler
	Messages      *MessageHandler
	Stories       *StoryHandler
	Applications  *ApplicationHandler
	Search        *SearchHandler
	Admin         *AdminHandler

	AuthService  *service.AuthService
	AuditService *service.AuditService
	Metrics      *service.MetricsService

	ExportsEnabled bool
}

// RegisterRoutes mounts all API routes under the given prefix.
//
// Public listings use OptionalJWT so authenticated callers get owner or
// admin enriched views while anonymous callers still get the public ones.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	requireAuth := middleware.JWT(h.AuthService)
	optionalAuth := middleware.OptionalJWT(h.AuthService)

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	users := api.Group("/users")
	{
		users.GET("", optionalAuth, h.Users.List)
		users.GET("/:id", optionalAuth, h.Users.Get)
		users.PUT("/:id", requireAuth, h.Users.Update)
		users.DELETE("/:id", requireAuth, h.Users.Delete)
	}

	opportunities := api.Group("/opportunities")
	{
		opportunities.GET("", optionalAuth, h.Opportunities.List)
		opportunities.GET("/:id", optionalAuth, h.Opportunities.Get)
		opportunities.POST("", requireAuth, h.Opportunities.Create)
		opportunities.PUT("/:id", requireAuth, h.Opportunities.Update)
		opportunities.DELETE("/:id", requireAuth, h.Opportunities.Delete)
	}

	scholarships := api.Group("/scholarships")
	{
		scholarships.GET("", optionalAuth, h.Scholarships.List)
		scholarships.GET("/eligible", requireAuth, h.Scholarships.Eligible)
		scholarships.GET("/:id", optionalAuth, h.Scholarships.Get)
		scholarships.POST("", requireAuth, h.Scholarships.Create)
		scholarships.PUT("/:id", requireAuth, h.Scholarships.Update)
		scholarships.DELETE("/:id", requireAuth, h.Scholarships.Delete)
		scholarships.POST("/:id/apply", requireAuth, h.Scholarships.Apply)
		scholarships.GET("/:id/applications", requireAuth, h.Scholarships.Applicants)
		scholarships.GET("/applications/my", requireAuth, h.Scholarships.MyApplications)
		scholarships.PUT("/applications/:id/status", requireAuth, h.Scholarships.ReviewApplication)
	}

	mentorship := api.Group("/mentorship")
	{
		mentorship.GET("/mentors", h.Mentorship.Mentors)
		mentorship.POST("/requests", requireAuth, h.Mentorship.Request)
		mentorship.GET("/requests", requireAuth, h.Mentorship.List)
		mentorship.PUT("/requests/:id/status", requireAuth, h.Mentorship.UpdateStatus)
	}

	messages := api.Group("/messages", requireAuth)
	{
		messages.POST("", h.Messages.Send)
		messages.GET("", h.Messages.Mailbox)
		messages.PUT("/:id/read", h.Messages.MarkRead)
	}

	stories := api.Group("/stories")
	{
		stories.GET("", h.Stories.List)
		stories.GET("/:id", h.Stories.Get)
		stories.POST("", requireAuth, h.Stories.Create)
		stories.PUT("/:id", requireAuth, h.Stories.Update)
		stories.DELETE("/:id", requireAuth, h.Stories.Delete)
	}

	applications := api.Group("/applications", requireAuth)
	{
		applications.POST("", h.Applications.Create)
		applications.GET("", h.Applications.ListMine)
		applications.GET("/my", h.Applications.ListMine)
		applications.GET("/:id", h.Applications.Get)
		applications.PUT("/:id/status", h.Applications.Review)
	}

	api.GET("/search", h.Search.Search)

	admin := api.Group("/admin", requireAuth, middleware.RequireRoles(models.RoleAdmin))
	admin.Use(middleware.Audit(h.AuditService, "ADMIN_ACCESS", "admin"))
	{
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.PUT("/users/:id", h.Users.Update)
		admin.DELETE("/users/:id", h.Users.Delete)
		admin.GET("/opportunities", h.Admin.ListOpportunities)
		admin.DELETE("/opportunities/:id", h.Opportunities.Delete)
		admin.GET("/scholarships", h.Admin.ListScholarships)
		admin.DELETE("/scholarships/:id", h.Scholarships.Delete)
		admin.GET("/applications", h.Applications.AdminList)
		if h.ExportsEnabled {
			admin.GET("/export/users", h.Admin.ExportUsers)
			admin.GET("/export/applications", h.Admin.ExportApplications)
		}
		admin.GET("/audit-logs", h.Admin.AuditLogs)
	}
}
