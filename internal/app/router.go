package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		// 注册页需要展示院系列表
		public.GET("/departments", c.department.ListDepartments)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)
		authGroup.GET("/classmates", c.user.ListClassmates)
		authGroup.GET("/dashboard", c.dashboard.Get)

		// 课堂内容对讲师与本院系学生可见
		authGroup.GET("/classrooms", c.classroom.List)
		authGroup.GET("/classrooms/:id", c.classroom.Get)
		authGroup.GET("/classrooms/:id/posts", c.post.List)
		authGroup.GET("/classrooms/:id/meetings", c.meeting.List)
		authGroup.GET("/classrooms/:id/assignments", c.assignment.List)
		authGroup.GET("/classrooms/:id/quizzes", c.quiz.List)
		authGroup.GET("/assignments/:id", c.assignment.Get)

		a.registerStudentRoutes(authGroup, c)
		a.registerLecturerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/quizzes/:id/paper", c.quiz.TakeQuiz)
		student.POST("/quizzes/:id/responses", c.response.Submit)
		student.GET("/quizzes/:id/responses/mine", c.response.MyResponse)
		student.POST("/assignments/:id/submissions", c.assignment.SubmitWork)
	}
}

func (a *App) registerLecturerRoutes(rg *gin.RouterGroup, c *controllers) {
	lecturer := rg.Group("/")
	lecturer.Use(middleware.RoleMiddleware(model.Lecturer))
	{
		lecturer.POST("/classrooms", c.classroom.Create)
		lecturer.PUT("/classrooms/:id", c.classroom.Update)
		lecturer.DELETE("/classrooms/:id", c.classroom.Delete)

		lecturer.POST("/classrooms/:id/posts", c.post.Create)
		lecturer.PUT("/posts/:id", c.post.Update)
		lecturer.DELETE("/posts/:id", c.post.Delete)

		lecturer.POST("/classrooms/:id/meetings", c.meeting.Create)
		lecturer.PUT("/meetings/:id", c.meeting.Update)
		lecturer.DELETE("/meetings/:id", c.meeting.Delete)

		lecturer.POST("/classrooms/:id/assignments", c.assignment.Create)
		lecturer.PUT("/assignments/:id", c.assignment.Update)
		lecturer.DELETE("/assignments/:id", c.assignment.Delete)
		lecturer.POST("/assignments/:id/document", c.assignment.UploadDocument)
		lecturer.GET("/assignments/:id/submissions", c.assignment.ListSubmissions)
		lecturer.PUT("/submissions/:id/grade", c.assignment.GradeSubmission)

		lecturer.POST("/classrooms/:id/quizzes", c.quiz.Create)
		lecturer.GET("/quizzes/:id", c.quiz.Get)
		lecturer.PUT("/quizzes/:id", c.quiz.Update)
		lecturer.DELETE("/quizzes/:id", c.quiz.Delete)
		lecturer.PUT("/quizzes/:id/questions", c.quiz.ReplaceQuestions)
		lecturer.GET("/quizzes/:id/responses", c.response.ListForReview)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/batches", c.department.CreateBatch)
		admin.GET("/batches", c.department.ListBatches)
		admin.POST("/departments", c.department.CreateDepartment)
	}
}
