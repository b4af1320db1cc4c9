package api

import (
	"log"
	stdhttp "net/http"

	intconfig "prorental/internal/config"
	h "prorental/internal/http/handlers"
	"prorental/internal/http/middleware"
	"prorental/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, store session.Store) *gin.Engine {
	h.Configure(env, store)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins), middleware.Metrics())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", env.UploadDir)

	requireUser := middleware.RequireUser(env.JWTSecret)
	requireAdmin := middleware.RequireAdmin(store)
	requireAny := middleware.RequireUserOrAdmin(env.JWTSecret, store)
	requireAdminRole := middleware.RequireAdminRole(env.JWTSecret, store)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Users (bearer token)
		users := api.Group("/users")
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.LoginUser)
		users.POST("/forgot-password", h.ForgotUserPassword)
		users.GET("/profile", requireUser, h.GetUserProfile)
		users.PUT("/profile", requireUser, h.UpdateUserProfile)

		// Admin (session cookie)
		admin := api.Group("/admin")
		admin.POST("/login", h.LoginAdmin)
		admin.POST("/forgot-password", h.ForgotAdminPassword)
		admin.POST("/logout", requireAdmin, h.LogoutAdmin)
		admin.GET("/profile", requireAdmin, h.GetAdminProfile)
		admin.PUT("/profile", requireAdmin, h.UpdateAdminProfile)

		// Catalog: items
		items := api.Group("/items")
		items.GET("", h.GetItems)
		items.GET("/my-items", requireUser, h.GetMyItems)
		items.GET("/:id", h.GetItem)
		items.POST("", requireAny, h.CreateItem)
		items.PUT("/:id", requireAdminRole, h.UpdateItem)
		items.DELETE("/:id", requireAdminRole, h.DeleteItem)

		// Catalog: vehicles
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", requireAny, h.CreateVehicle)
		vehicles.PUT("/:id", requireAdminRole, h.UpdateVehicle)
		vehicles.DELETE("/:id", requireAdminRole, h.DeleteVehicle)

		// Bookings. Static segments must register before the :id routes.
		bookings := api.Group("/bookings")
		bookings.POST("", requireUser, h.CreateBooking)
		bookings.GET("/my-bookings", requireUser, h.GetMyBookings)
		bookings.GET("/my-items", requireUser, h.GetMyItemBookings)
		bookings.GET("/admin-all", requireAdmin, h.GetAllBookings)
		bookings.GET("/admin-stats", requireAdmin, h.GetAdminStats)
		bookings.PUT("/admin-status/:id", requireAdmin, h.AdminUpdateBookingStatus)
		bookings.GET("/:id", requireAny, h.GetBooking)
		bookings.DELETE("/:id", requireUser, h.DeleteBooking)
		bookings.PUT("/:id/status", requireUser, h.UpdateBookingStatus)
		bookings.GET("/:id/receipt", requireAny, h.GetBookingReceiptPDF)

		// Uploads
		api.POST("/uploads", requireAny, h.UploadImage)
	}

	h.SetRouter(r)
	return r
}
