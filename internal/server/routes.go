// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/auth"
	applicationctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/application"
	dashboardctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/dashboard"
	feedbackctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/feedback"
	jobctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/job"
	jobconnectionctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/jobconnection"
	questionctrl "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/controller/question"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/middleware"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	jobSvc := service.NewJobService(s.DB, s.Log, s.Queue)
	applicationSvc := service.NewApplicationService(s.DB, s.Log, s.Queue)
	connectionSvc := service.NewJobConnectionService(s.DB, s.Log)
	feedbackSvc := service.NewFeedbackService(s.DB, s.Log)
	questionSvc := service.NewQuestionService(s.DB, s.Log)
	dashboardSvc := service.NewDashboardService(s.DB, s.Log)

	lAuth := auth.NewController(s.DB, s.Log, s.Mailer)
	jobs := jobctrl.NewJobController(jobSvc)
	applications := applicationctrl.NewApplicationController(applicationSvc)
	connections := jobconnectionctrl.NewJobConnectionController(connectionSvc)
	feedbacks := feedbackctrl.NewFeedbackController(feedbackSvc)
	questions := questionctrl.NewQuestionController(questionSvc)
	dashboards := dashboardctrl.NewDashboardController(dashboardSvc)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.SizeLimit(1 << 20))
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("register", lAuth.RegisterHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			needAuth.GET("/dashboard", dashboards.SummaryHandler)

			jobRoute := needAuth.Group("/job")
			{
				jobRoute.GET("", jobs.GetAllHandler)
				jobRoute.GET("/:id", jobs.GetByIDHandler)
				jobRoute.GET("/:id/question", questions.ListHandler)

				jobRoute.POST("/:id/question", middleware.CheckRole(model.RoleWorker), questions.AskHandler)

				employerJob := jobRoute.Group("")
				{
					employerJob.Use(middleware.CheckRole(model.RoleEmployer))
					employerJob.POST("", jobs.CreateHandler)
					employerJob.POST("/:id/close", jobs.CloseHandler)
					employerJob.GET("/:id/application", applications.ListForJobHandler)
				}
			}

			questionRoute := needAuth.Group("/question")
			{
				questionRoute.Use(middleware.CheckRole(model.RoleEmployer))
				questionRoute.POST("/:id/answer", questions.AnswerHandler)
			}

			applicationRoute := needAuth.Group("/application")
			{
				workerApp := applicationRoute.Group("")
				{
					workerApp.Use(middleware.CheckRole(model.RoleWorker))
					workerApp.POST("", applications.SubmitHandler)
					workerApp.GET("", applications.ListMineHandler)
					workerApp.PATCH("/:id", applications.EditHandler)
					workerApp.POST("/:id/withdraw", applications.WithdrawHandler)
				}

				employerApp := applicationRoute.Group("")
				{
					employerApp.Use(middleware.CheckRole(model.RoleEmployer))
					employerApp.POST("/:id/accept", applications.AcceptHandler)
					employerApp.POST("/:id/reject", applications.RejectHandler)
				}
			}

			connectionRoute := needAuth.Group("/connection")
			{
				connectionRoute.Use(middleware.CheckRole(model.RoleWorker, model.RoleEmployer))
				connectionRoute.POST("/:id/cancel", connections.CancelHandler)
				connectionRoute.POST("/:id/feedback", feedbacks.SubmitHandler)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
