package api

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"limocontrol/internal/config"
	"limocontrol/internal/http/handlers"
	"limocontrol/internal/http/middleware"
)

func NewRouter(env config.Env, h handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	corsCfg := cors.DefaultConfig()
	if len(env.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = env.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", h.Landing)
	r.GET("/health", h.Health)
	r.POST("/auth/login", h.Login)

	// everything below requires authentication
	authed := r.Group("/", middleware.RequireAuth([]byte(env.JWTSecret)))
	{
		users := authed.Group("/users", middleware.RequireAdmin())
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.PUT("/:id", h.UpdateUser)
			users.POST("/:id/reset-password", h.ResetUserPassword)
			users.DELETE("/:id", h.DeleteUser)
		}

		drivers := authed.Group("/drivers")
		{
			drivers.GET("", h.ListDrivers)
			drivers.POST("", h.CreateDriver)
			drivers.PUT("/:id", h.UpdateDriver)
			drivers.PATCH("/:id/active", h.SetDriverActive)
			drivers.DELETE("/:id", h.DeleteDriver)
		}

		clients := authed.Group("/clients")
		{
			clients.GET("", h.ListClients)
			clients.POST("", h.CreateClient)
			clients.PUT("/:id", h.UpdateClient)
			clients.PATCH("/:id/active", h.SetClientActive)
			clients.DELETE("/:id", h.DeleteClient)
		}

		companies := authed.Group("/companies")
		{
			companies.GET("", h.ListCompanies)
			companies.POST("", h.CreateCompany)
			companies.PUT("/:id", h.UpdateCompany)
			companies.PATCH("/:id/active", h.SetCompanyActive)
			companies.DELETE("/:id", h.DeleteCompany)
		}

		trips := authed.Group("/trips")
		{
			trips.GET("", h.ListTrips)
			trips.POST("", h.CreateTrip)
			trips.PUT("/:id", h.UpdateTrip)
			trips.PATCH("/:id/received", h.SetTripReceived)
			trips.DELETE("/:id", h.DeleteTrip)
			trips.GET("/:id/sheet", h.TripSheet)
		}

		authed.GET("/dashboard", h.DashboardSummary)
	}

	return r
}
