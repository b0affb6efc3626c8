package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/handler"
	"github.com/mjaja25/exam-website-backend/internal/middleware"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Submit      *handler.SubmitHandler
	Leaderboard *handler.LeaderboardHandler
	Result      *handler.ResultHandler
	Practice    *handler.PracticeHandler
	Question    *handler.QuestionHandler
	Admin       *handler.AdminHandler
}

// New builds the gin engine with all routes and middleware mounted.
func New(cfg *config.Config, h Handlers, auth *service.AuthService, rdb *redis.Client) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(response.RequestIDMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.RateLimit(rdb, "auth", 10, time.Minute))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}
	authed := v1.Group("/auth")
	authed.Use(middleware.RequireAuth(auth))
	{
		authed.POST("/logout", h.Auth.Logout)
		authed.GET("/me", h.Auth.Me)
	}

	questions := v1.Group("/questions")
	questions.Use(middleware.RequireAuth(auth))
	{
		questions.GET("/passage", h.Question.Passage)
		questions.GET("/letter", h.Question.Letter)
		questions.GET("/excel", h.Question.Excel)
	}

	mcq := v1.Group("/mcq")
	mcq.Use(middleware.RequireAuth(auth))
	{
		mcq.GET("/next-set", h.Question.NextMCQSet)
	}

	submit := v1.Group("/submit")
	submit.Use(middleware.RequireAuth(auth))
	submit.Use(middleware.RateLimit(rdb, "submit", 30, time.Minute))
	{
		submit.POST("/typing", h.Submit.Typing)
		submit.POST("/letter", h.Submit.Letter)
		submit.POST("/excel", h.Submit.Excel)
		submit.POST("/excel-mcq", h.Submit.MCQ)
	}

	leaderboard := v1.Group("/leaderboard")
	leaderboard.Use(middleware.RequireAuth(auth))
	{
		leaderboard.GET("/all", h.Leaderboard.All)
		leaderboard.GET("/my-rank", h.Leaderboard.MyRank)
		leaderboard.GET("/compare/:session_id", h.Leaderboard.Compare)
	}

	results := v1.Group("/results")
	results.Use(middleware.RequireAuth(auth))
	{
		results.GET("/:session_id", h.Result.Get)
		results.GET("/:session_id/percentile", h.Result.Percentile)
	}

	practice := v1.Group("/practice")
	practice.Use(middleware.RequireAuth(auth))
	{
		practice.GET("/history", h.Practice.History)
		practice.GET("/:id", h.Practice.Get)
		practice.POST("/typing", h.Practice.Typing)
		practice.POST("/letter", h.Practice.Letter)
	}

	analysis := v1.Group("/analysis")
	analysis.Use(middleware.RequireAuth(auth))
	analysis.Use(middleware.RateLimit(rdb, "analysis", 10, time.Minute))
	{
		analysis.POST("", h.Practice.Analyze)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(auth), middleware.RequireAdmin())
	{
		admin.POST("/passages", h.Admin.CreatePassage)
		admin.GET("/passages", h.Admin.ListPassages)
		admin.DELETE("/passages/:id", h.Admin.DeletePassage)

		admin.POST("/letter-questions", h.Admin.CreateLetterQuestion)
		admin.GET("/letter-questions", h.Admin.ListLetterQuestions)
		admin.DELETE("/letter-questions/:id", h.Admin.DeleteLetterQuestion)

		admin.POST("/excel-questions", h.Admin.CreateExcelQuestion)
		admin.GET("/excel-questions", h.Admin.ListExcelQuestions)
		admin.DELETE("/excel-questions/:id", h.Admin.DeleteExcelQuestion)

		admin.POST("/mcq-sets", h.Admin.CreateMCQSet)
		admin.GET("/mcq-sets", h.Admin.ListMCQSets)
		admin.GET("/mcq-sets/:id", h.Admin.GetMCQSet)
		admin.PATCH("/mcq-sets/:id/active", h.Admin.ToggleMCQSet)
		admin.DELETE("/mcq-sets/:id", h.Admin.DeleteMCQSet)

		admin.GET("/settings", h.Admin.GetSettings)
		admin.PUT("/settings", h.Admin.UpdateSettings)
	}

	return r
}
