// Package router wires the HTTP routes to their handlers.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nakayamaryo0731/oaiko/config"
	"github.com/nakayamaryo0731/oaiko/handlers"
	"github.com/nakayamaryo0731/oaiko/middleware"
)

// Dependencies holds everything SetupRouter needs to define the routes.
type Dependencies struct {
	Config            *config.Config
	RedisClient       *redis.Client
	GroupHandler      *handlers.GroupHandler
	ExpenseHandler    *handlers.ExpenseHandler
	TagHandler        *handlers.TagHandler
	SettlementHandler *handlers.SettlementHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	InvitationHandler *handlers.InvitationHandler
	HealthHandler     *handlers.HealthHandler
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/health", deps.HealthHandler.ReadinessCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		// Invitation preview is public so an invited user can see the group
		// name before signing in.
		v1.GET("/invitations/:token", deps.InvitationHandler.GetInvitation)

		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(deps.Config.Server.JwtSecretKey))
		authRoutes.Use(middleware.RateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.RequestsPerMinute,
			time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
		))
		{
			authRoutes.POST("/invitations/:token/accept", deps.InvitationHandler.AcceptInvitation)

			groupRoutes := authRoutes.Group("/groups")
			{
				groupRoutes.POST("", deps.GroupHandler.CreateGroup)
				groupRoutes.GET("", deps.GroupHandler.ListGroups)
				groupRoutes.GET("/:groupId", deps.GroupHandler.GetGroup)
				groupRoutes.PATCH("/:groupId/closing-day", deps.GroupHandler.UpdateClosingDay)
				groupRoutes.GET("/:groupId/members", deps.GroupHandler.ListMembers)
				groupRoutes.GET("/:groupId/categories", deps.GroupHandler.ListCategories)
				groupRoutes.POST("/:groupId/invitations", deps.InvitationHandler.CreateInvitation)

				expenseRoutes := groupRoutes.Group("/:groupId/expenses")
				{
					expenseRoutes.POST("", deps.ExpenseHandler.CreateExpense)
					expenseRoutes.GET("", deps.ExpenseHandler.ListExpenses)
					expenseRoutes.GET("/:expenseId", deps.ExpenseHandler.GetExpense)
					expenseRoutes.PUT("/:expenseId", deps.ExpenseHandler.UpdateExpense)
					expenseRoutes.DELETE("/:expenseId", deps.ExpenseHandler.DeleteExpense)
				}

				tagRoutes := groupRoutes.Group("/:groupId/tags")
				{
					tagRoutes.POST("", deps.TagHandler.CreateTag)
					tagRoutes.GET("", deps.TagHandler.ListTags)
					tagRoutes.DELETE("/:tagId", deps.TagHandler.DeleteTag)
				}

				settlementRoutes := groupRoutes.Group("/:groupId/settlements")
				{
					settlementRoutes.GET("", deps.SettlementHandler.ListSettlements)
					settlementRoutes.GET("/summary", deps.SettlementHandler.GetSummary)
					settlementRoutes.POST("", deps.SettlementHandler.ConfirmSettlement)
				}

				analyticsRoutes := groupRoutes.Group("/:groupId/analytics")
				{
					analyticsRoutes.GET("/categories", deps.AnalyticsHandler.CategoryBreakdown)
					analyticsRoutes.GET("/tags", deps.AnalyticsHandler.TagBreakdown)
					analyticsRoutes.GET("/trend", deps.AnalyticsHandler.MonthlyTrend)
				}
			}
		}
	}

	return r
}
