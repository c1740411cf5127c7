package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/config"
	"github.com/arjunrk/campusvibe/internal/handlers"
	"github.com/arjunrk/campusvibe/internal/middleware"
	"github.com/arjunrk/campusvibe/internal/models"
	"github.com/arjunrk/campusvibe/internal/monitoring"
	"github.com/arjunrk/campusvibe/internal/payment"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	rdb := config.InitRedis(cfg)
	gateway := payment.NewSimulatedGateway()

	r := gin.Default()

	setupRoutes(r, db, rdb, gateway)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, gateway payment.Gateway) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.PaymentGatewayMiddleware(gateway))
	r.Use(monitoring.RequestMetrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	organizerRoles := []string{models.RoleAdmin, models.RoleOrganizer, models.RoleDepartment, models.RoleClub}

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		auth.Use(middleware.RateLimitMiddleware(rdb, "auth", 10, time.Minute))
		{
			auth.POST("/register", handlers.Signup)
			auth.POST("/login", handlers.Login)
		}

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.GET("/:id/pricing", handlers.GetEventPricing)
			eventPublic.POST("/:id/quote", handlers.QuoteEvent)
		}

		departmentPublic := public.Group("/departments")
		{
			departmentPublic.GET("", handlers.ListDepartments)
			departmentPublic.GET("/:id", handlers.GetDepartment)
			departmentPublic.GET("/:id/events", handlers.ListEventsByOrganizer("department_id"))
		}

		clubPublic := public.Group("/clubs")
		{
			clubPublic.GET("", handlers.ListClubs)
			clubPublic.GET("/:id", handlers.GetClub)
			clubPublic.GET("/:id/events", handlers.ListEventsByOrganizer("club_id"))
		}

		mentorPublic := public.Group("/mentors")
		{
			mentorPublic.GET("", handlers.ListMentors)
			mentorPublic.GET("/:id", handlers.GetMentor)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/auth/me", handlers.CurrentUser)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", middleware.RequireRoles(organizerRoles...), handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.PATCH("/:id/status", handlers.UpdateEventStatus)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)

			eventProtected.POST("/:id/register",
				middleware.RateLimitMiddleware(rdb, "register", 30, time.Minute),
				handlers.RegisterForEvent)
			eventProtected.DELETE("/:id/register", handlers.CancelRegistration)
			eventProtected.GET("/:id/registration", handlers.CheckRegistration)
			eventProtected.POST("/:id/bookmark", handlers.ToggleBookmark)
		}

		registrationProtected := protected.Group("/registrations")
		{
			registrationProtected.GET("", handlers.ListMyRegistrations)
			registrationProtected.GET("/:id/qr", handlers.GenerateTicketQR)
		}

		protected.POST("/checkin", handlers.CheckInTicket)

		protected.GET("/bookmarks", handlers.ListBookmarks)
		protected.GET("/payments/history", handlers.ListMyPayments)

		profileProtected := protected.Group("/profile")
		{
			profileProtected.GET("", handlers.GetProfile)
			profileProtected.PUT("", handlers.UpdateProfile)
			profileProtected.POST("/image", handlers.UploadProfileImage)
		}
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", handlers.ListUsers)
			adminUsers.GET("/:id", handlers.GetUser)
			adminUsers.PUT("/:id/role", handlers.UpdateUserRole)
			adminUsers.DELETE("/:id", handlers.DeleteUser)
		}

		adminPayments := admin.Group("/payments")
		{
			adminPayments.GET("", handlers.ListPayments)
			adminPayments.POST("/:id/refund", handlers.RefundPayment)
		}

		admin.GET("/events/:id/payments", handlers.ListEventPayments)
		admin.PUT("/events/:id/pricing", handlers.SaveEventPricing)
		admin.GET("/pricing", handlers.ListEventPricing)

		adminCoupons := admin.Group("/coupons")
		{
			adminCoupons.POST("", handlers.CreateCoupon)
			adminCoupons.DELETE("/:code", handlers.DeleteCoupon)
		}

		adminDepartments := admin.Group("/departments")
		{
			adminDepartments.POST("", handlers.CreateDepartment)
			adminDepartments.PUT("/:id", handlers.UpdateDepartment)
			adminDepartments.DELETE("/:id", handlers.DeleteDepartment)
		}

		adminClubs := admin.Group("/clubs")
		{
			adminClubs.POST("", handlers.CreateClub)
			adminClubs.PUT("/:id", handlers.UpdateClub)
			adminClubs.DELETE("/:id", handlers.DeleteClub)
		}

		adminMentors := admin.Group("/mentors")
		{
			adminMentors.POST("", handlers.CreateMentor)
			adminMentors.PUT("/:id", handlers.UpdateMentor)
			adminMentors.DELETE("/:id", handlers.DeleteMentor)
		}
	}
}
