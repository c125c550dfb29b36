package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "github.com/ammarraza1199/Mock-interview-Backend/internal/app"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/bootstrap"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/repository"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/handler"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	uploadRepo := repository.NewUploadRepository(app.MySQL)
	analysisRepo := repository.NewAnalysisFeedbackRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	uploadService := appsvc.NewUploadService(uploadRepo, app.Cipher)
	interviewService := appsvc.NewInterviewService(uploadRepo, analysisRepo, app.Generator, app.Transcriber, app.Cipher)
	feedbackService := appsvc.NewFeedbackService(
		app.FeedbackPublisher,
		analysisRepo,
		app.Mailer,
		app.Config.Mail.Subject,
	)

	authHandler := handler.NewAuthHandler(authService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	interviewHandler := handler.NewInterviewHandler(interviewService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)
	aiLimit := middleware.AIRateLimit(app.RateLimiter)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)

	interviewGroup := v1.Group("/interview")
	interviewGroup.Use(authJWT)
	interviewGroup.POST("/upload", uploadHandler.Ingest)
	interviewGroup.GET("/job-description", uploadHandler.JobDescription)
	interviewGroup.GET("/questions", aiLimit, interviewHandler.Questions)
	interviewGroup.POST("/transcribe", aiLimit, interviewHandler.Transcribe)
	interviewGroup.POST("/analyze-answer", aiLimit, interviewHandler.AnalyzeAnswer)

	feedbackGroup := v1.Group("/feedback")
	feedbackGroup.Use(authJWT)
	feedbackGroup.POST("", feedbackHandler.Submit)
	feedbackGroup.GET("", feedbackHandler.ListAnalysis)
	feedbackGroup.POST("/send", feedbackHandler.SendDigest)

	return router
}
